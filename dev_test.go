package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGeneratedSource(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"// Code generated by strunemix. DO NOT EDIT.\n\npackage models\n", true},
		{"// Code generated by stringer. DO NOT EDIT.\r\npackage models\n", true},
		{"// Code generated by strunemix. DO NOT EDIT.", true},
		{"package models\n\n// Code generated by strunemix. DO NOT EDIT.\n", false},
		{"// Code generated by hand\npackage models\n", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isGeneratedSource([]byte(tt.src)), "%q", tt.src)
	}
}

func TestCollectWatchDirs(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"a/b", ".git", "_tools", "vendor/x", "testdata/in"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	file := filepath.Join(root, "a", "models.go")
	require.NoError(t, os.WriteFile(file, []byte("package a\n"), 0o644))

	dirs, err := collectWatchDirs([]string{root + "/..."})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")}, dirs)

	// 非递归模式与单个文件，重复目录只出现一次
	dirs, err = collectWatchDirs([]string{filepath.Join(root, "a"), file})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a")}, dirs)

	_, err = collectWatchDirs([]string{filepath.Join(root, "missing")})
	require.Error(t, err)
}
