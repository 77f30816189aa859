package cmd

import (
	"github.com/packagewjx/phishing-dataset/internal/datasource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestMergeCmd(t *testing.T) {
	dir := t.TempDir()
	emailPath := filepath.Join(dir, "Phishing_Email.csv")
	urlPath := filepath.Join(dir, "new_data_urls.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(emailPath, []byte("Email Text,Email Type\nwin a prize,Phishing Email\nhi mom,Safe Email\n"), 0666))
	require.NoError(t, os.WriteFile(urlPath, []byte("url,status\nhttp://x.example,1\nhttp://y.example,0\n"), 0666))

	rootCmd.SetArgs([]string{"merge", "--config", filepath.Join(dir, "none.yaml"),
		"--email", emailPath, "--url", urlPath, "--output", output})
	require.NoError(t, rootCmd.Execute())

	table, err := datasource.OpenTable(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Phishing Data", "Phishing Type", "Phishing Class"}, table.Columns)
	assert.Equal(t, [][]string{
		{"win a prize", "Mail", "1"},
		{"hi mom", "Mail", "0"},
		{"http://x.example", "URL", "1"},
		{"http://y.example", "URL", "0"},
	}, table.Rows)
}
