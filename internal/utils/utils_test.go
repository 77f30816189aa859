package utils

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestNormalizeColumnName(t *testing.T) {
	cases := map[string]string{
		"Email Text":       "email_text",
		"  Phishing Data ": "phishing_data",
		"url":              "url",
		"STATUS":           "status",
		"Phishing  Class":  "phishing__class",
	}
	for in, expect := range cases {
		assert.Equal(t, expect, NormalizeColumnName(in), in)
	}
	assert.Equal(t, []string{"a_b", "c"}, NormalizeColumnNames([]string{"A B", " c"}))
}

func TestMissingColumns(t *testing.T) {
	missing := MissingColumns([]string{"phishing_data", "other"},
		[]string{"phishing_data", "phishing_type", "phishing_class"})
	assert.Equal(t, []string{"phishing_type", "phishing_class"}, missing)
	assert.Empty(t, MissingColumns([]string{"a"}, []string{"a"}))
}

func TestWriterCounter(t *testing.T) {
	builder := &strings.Builder{}
	counter := &WriterCounter{Writer: builder}
	_, err := counter.Write([]byte("hello"))
	assert.NoError(t, err)
	_, _ = counter.Write([]byte(",world"))
	assert.Equal(t, uint64(11), counter.Count)
	assert.Equal(t, "hello,world", builder.String())
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" a "))
}
