package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"copy.vert", true},
		{"convolution_x.frag", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../escape.frag", false},
		{`dir\file`, false},
		{"a/b", false},
	}

	for _, tt := range tests {
		if got := SafeFileName(tt.name); got != tt.want {
			t.Errorf("SafeFileName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWriteFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "glsl")

	path, err := WriteFile(dir, "copy.frag", []byte("void main() {}\n"))
	if err != nil {
		t.Fatalf("WriteFile = %v", err)
	}
	if !DirExists(dir) {
		t.Errorf("DirExists(%s) = false after WriteFile", dir)
	}
	if !FileExists(path) {
		t.Errorf("FileExists(%s) = false after WriteFile", path)
	}
	if FileExists(dir) {
		t.Errorf("FileExists(%s) = true for a directory", dir)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "void main() {}\n" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
}

func TestWriteFileRejectsUnsafeName(t *testing.T) {
	if _, err := WriteFile(t.TempDir(), "../x.frag", nil); err == nil {
		t.Error("WriteFile(../x.frag) = nil, want error")
	}
}
