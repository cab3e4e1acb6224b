package model

// File representa um arquivo-fonte referenciado por um ou mais reports.
type File struct {
	ID           int    // ordem de criação dentro do cache (0-based)
	Path         string // caminho absoluto
	OriginalPath string // caminho como veio no resultado do analisador
}

// FileCache deduplica handles por caminho absoluto. Vive apenas durante uma
// chamada de GetReports.
type FileCache map[string]*File

// GetOrCreateFile devolve o handle já registrado para path ou cria um novo.
func GetOrCreateFile(path string, cache FileCache) *File {
	return GetOrCreateFileFrom(path, path, cache)
}

// GetOrCreateFileFrom é como GetOrCreateFile, mas guarda também o caminho
// original (relativo, do container, etc.) usado na primeira ocorrência.
func GetOrCreateFileFrom(path, original string, cache FileCache) *File {
	if f, ok := cache[path]; ok {
		return f
	}
	f := &File{ID: len(cache), Path: path, OriginalPath: original}
	cache[path] = f
	return f
}
