package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func TestCreateAll(t *testing.T) {

	t.Run("it creates a file in directory", func(t *testing.T) {
		defaultUmask := syscall.Umask(0)
		defer syscall.Umask(defaultUmask)

		root, err := os.MkdirTemp("", "")
		if err != nil {
			t.Fatal("fail to create workdir.", err)
		}
		defer os.RemoveAll(root)

		CreateAll(filepath.Join(root, "foo", "bar", "targetFile"), 0700, 0707)

		fooStat, err := os.Stat(filepath.Join(root, "foo"))
		if err != nil || !fooStat.IsDir() {
			t.Fatal("cannot create directory (stat, err):", fooStat, err)
		}
		if fooStat.Mode().Perm() != 0707 {
			t.Fatal("directory mod is wrong. (actual, expected): ", fooStat.Mode(), fs.FileMode(0707))
		}

		fStat, err := os.Stat(filepath.Join(root, "foo", "bar", "targetFile"))
		if err != nil || fStat.IsDir() {
			t.Fatal("cannot create targetFile (stat, err):", fStat, err)
		}
		if fStat.Mode().Perm() != 0700 {
			t.Fatal("target file mod is wrong. (actual, expected): ", fStat.Mode(), fs.FileMode(0700))
		}
	})
}

func TestDirCopy(t *testing.T) {
	t.Run("it copies files keeping relative paths", func(t *testing.T) {
		src := t.TempDir()
		dest := t.TempDir()

		if err := os.MkdirAll(filepath.Join(src, "1"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(src, "1", "00_schema.sql"), []byte("create table t ();"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(src, "top.sql"), []byte("select 1;"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := DirCopy(src, filepath.Join(dest, "repo")); err != nil {
			t.Fatal(err)
		}

		got, err := os.ReadFile(filepath.Join(dest, "repo", "1", "00_schema.sql"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "create table t ();" {
			t.Errorf("unexpected content: %s", got)
		}

		got, err = os.ReadFile(filepath.Join(dest, "repo", "top.sql"))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "select 1;" {
			t.Errorf("unexpected content: %s", got)
		}
	})

	t.Run("when the source is missing, it should return an error", func(t *testing.T) {
		if err := DirCopy(filepath.Join(t.TempDir(), "no-such-dir"), t.TempDir()); err == nil {
			t.Error("no error caused, unexpectedly")
		}
	})
}
