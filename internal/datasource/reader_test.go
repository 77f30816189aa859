package datasource

import (
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader("Email Text,Email Type\n" +
		"\"hello, world\",Safe Email\n" +
		"click here,Phishing Email\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Email Text", "Email Type"}, table.Columns)
	assert.Equal(t, 2, len(table.Rows))
	assert.Equal(t, "hello, world", table.Rows[0][0])
	assert.Equal(t, "Phishing Email", table.Rows[1][1])

	/*
		BOM与短行
	*/
	table, err = ReadTable(strings.NewReader("\ufeffurl,status\nexample.com\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.ColumnIndex("url"))
	assert.Equal(t, []string{"example.com", ""}, table.Rows[0])
}

func TestReadTable_ParseError(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))

	_, err = ReadTable(strings.NewReader("url,status\na,1,extra\n"))
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
}

func TestOpenTable(t *testing.T) {
	_, err := OpenTable(filepath.Join(t.TempDir(), "absolutelyNotExist.csv"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	path := filepath.Join(t.TempDir(), "urls.csv")
	require.NoError(t, os.WriteFile(path, []byte("url,status\nexample.com,1\n"), 0666))
	table, err := OpenTable(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(table.Rows))
}
