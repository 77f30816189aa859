package sink

import (
	"github.com/packagewjx/phishing-dataset/internal/datasource"
	"github.com/packagewjx/phishing-dataset/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testDataset() *core.Dataset {
	return &core.Dataset{Records: []*core.Record{
		{Data: "Dear customer,\nyour account is \"locked\"", SourceType: core.Mail, Label: 1},
		{Data: "see you at lunch", SourceType: core.Mail, Label: 0},
		{Data: "http://paypa1.example/login", SourceType: core.URL, Label: 1},
		{Data: "https://example.org/", SourceType: core.URL, Label: 0},
	}}
}

func TestWriteCSV(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteCSV(builder, &core.Dataset{Records: []*core.Record{
		{Data: "a.com", SourceType: core.URL, Label: 1},
	}})
	assert.NoError(t, err)
	assert.Equal(t, "Phishing Data,Phishing Type,Phishing Class\na.com,URL,1\n", builder.String())
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	// 已存在的文件应被覆盖
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old content\n", 100)), 0666))

	ds := testDataset()
	n, err := WriteFile(path, ds)
	require.NoError(t, err)
	stat, _ := os.Stat(path)
	assert.Equal(t, uint64(stat.Size()), n)

	table, err := datasource.OpenTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{core.HeaderData, core.HeaderType, core.HeaderClass}, table.Columns)
	require.Equal(t, ds.Len(), len(table.Rows))
	for i, record := range ds.Records {
		assert.Equal(t, record.Data, table.Rows[i][0])
		assert.Equal(t, record.SourceType.String(), table.Rows[i][1])
		assert.Equal(t, []string{"1", "0", "1", "0"}[i], table.Rows[i][2])
	}
}

func TestWriteFile_IOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absolutelyNotExistDir", "dataset.csv")
	_, err := WriteFile(path, testDataset())
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
}
