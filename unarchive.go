package main

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive распаковывает архив с датасетом рядом с исходным файлом и
// удаляет сам архив. Возвращает путь к распакованному файлу, либо пустую
// строку, если файл не является поддерживаемым архивом.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackStream(filePath, ".gz", func(f *os.File) (io.Reader, error) {
			return gzip.NewReader(f)
		})
	case ".lz4":
		return unpackStream(filePath, ".lz4", func(f *os.File) (io.Reader, error) {
			return lz4.NewReader(f), nil
		})
	}
	return "", nil
}

// unpackStream - общий путь для потоковых форматов (gzip, lz4)
func unpackStream(filePath, ext string, wrap func(*os.File) (io.Reader, error)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	r, err := wrap(file)
	if err != nil {
		return "", err
	}

	destPath := strings.TrimSuffix(filePath, ext)
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, r); err != nil {
		return "", err
	}

	if err = os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	// В архиве может лежать мусор вроде __MACOSX, берем самый большой файл
	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", fmt.Errorf("empty zip archive: %s", filePath)
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if _, err = io.Copy(outFile, rc); err != nil {
		return "", err
	}

	if err = os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}
