package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFileSystem()

	d, err := fsys.Open(dir)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", dir, err)
	}

	absDir, _ := filepath.Abs(dir)
	if d.Path() != absDir {
		t.Errorf("directory.Path() = %q, want %q", d.Path(), absDir)
	}
}

func TestOSFileSystem_Open_NonexistentPath(t *testing.T) {
	fsys := NewOSFileSystem()

	_, err := fsys.Open(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Fatal("Open(nonexistent) should return error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(nonexistent) error should wrap fs.ErrNotExist, got %v", err)
	}
}

func TestOSFileSystem_Open_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.py")
	os.WriteFile(filePath, []byte("print(1)"), 0644)

	fsys := NewOSFileSystem()

	_, err := fsys.Open(filePath)
	if err == nil {
		t.Error("Open(file) should return error")
	}
}

func TestOSFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	expected := "package main // entry"
	os.WriteFile(filePath, []byte(expected), 0644)

	fsys := NewOSFileSystem()

	data, err := fsys.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != expected {
		t.Errorf("ReadFile() = %q, want %q", string(data), expected)
	}
}

func TestOSFileSystem_WriteFile_KeepsMode(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "run.py")
	os.WriteFile(filePath, []byte("# old"), 0755)

	fsys := NewOSFileSystem()
	if err := fsys.WriteFile(filePath, []byte("print(1)"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, _ := os.ReadFile(filePath)
	if string(data) != "print(1)" {
		t.Errorf("content = %q, want %q", string(data), "print(1)")
	}

	info, _ := os.Stat(filePath)
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want existing 0755 to be kept", info.Mode().Perm())
	}
}

func TestOSFileSystem_Stat(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "style.css")
	os.WriteFile(filePath, []byte("a {}"), 0644)

	fsys := NewOSFileSystem()

	info, err := fsys.Stat(filePath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.IsDir() {
		t.Error("Stat(file) should not be a directory")
	}

	info, err = fsys.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat(dir) should be a directory")
	}

	if _, err := fsys.Stat(filepath.Join(dir, "nope")); err == nil {
		t.Error("Stat(nonexistent) should return error")
	}
}

func TestOSFileSystem_Walk(t *testing.T) {
	dir := t.TempDir()

	// Create a tree:
	//   dir/
	//     a.py
	//     sub/
	//       b.js
	//     node_modules/
	//       c.js
	os.Mkdir(filepath.Join(dir, "sub"), 0755)
	os.Mkdir(filepath.Join(dir, "node_modules"), 0755)
	os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1"), 0644)
	os.WriteFile(filepath.Join(dir, "sub", "b.js"), []byte("let b"), 0644)
	os.WriteFile(filepath.Join(dir, "node_modules", "c.js"), []byte("let c"), 0644)

	fsys := NewOSFileSystem()
	d, err := fsys.Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var files []string
	err = d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if f.Info().IsDir() {
			if f.Info().Name() == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}
		files = append(files, filepath.ToSlash(f.RelativePath()))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Walk found %d files, want 2: %v", len(files), files)
	}
	if files[0] != "a.py" || files[1] != "sub/b.js" {
		t.Errorf("Walk found %v, want [a.py sub/b.js]", files)
	}
}

func TestOSFileSystem_Walk_SkipDirOnFileDoesNotSkipSiblings(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.py"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(dir, "b.py"), []byte("b"), 0644)

	d, err := NewOSFileSystem().Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	count := 0
	err = d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !f.Info().IsDir() {
			count++
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if count != 2 {
		t.Errorf("visited %d files, want 2", count)
	}
}

func TestOSFile_ReadContent(t *testing.T) {
	dir := t.TempDir()
	expected := "<!-- c --><p>x</p>"
	os.WriteFile(filepath.Join(dir, "index.html"), []byte(expected), 0644)

	d, err := NewOSFileSystem().Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var fileContent string
	d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if f.RelativePath() == "index.html" {
			data, err := f.ReadContent()
			if err != nil {
				t.Fatalf("ReadContent() error = %v", err)
			}
			fileContent = string(data)
		}
		return nil
	})

	if fileContent != expected {
		t.Errorf("ReadContent() = %q, want %q", fileContent, expected)
	}
}
