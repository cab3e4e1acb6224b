package discovery

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const sniffLimit = 64 << 10

// DetectResultFiles expande root em arquivos de resultado. Um arquivo é
// devolvido como está; de um diretório vêm os *.json (recursivo se pedido).
func DetectResultFiles(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("varrer %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// DetectAll aplica DetectResultFiles a cada entrada, sem repetir arquivos.
func DetectAll(roots []string, recursive bool) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range roots {
		files, err := DetectResultFiles(r, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// LooksLikePVSResult verifica se a chave "warnings" aparece no início do
// arquivo. O plog-converter escreve o JSON tanto indentado quanto em uma
// linha só, então a busca é feita nos primeiros bytes e não por linha.
func LooksLikePVSResult(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffLimit))
	if err != nil {
		return false
	}
	return bytes.Contains(head, []byte(`"warnings"`))
}
