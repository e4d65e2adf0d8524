package registry

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"
)

// getAllProtoInfo uses DFS to parse protoFile and everything it imports,
// returning the paths in dependency-first order. Already-visited files are
// skipped so repeated loads and diamond imports stay cheap.
func (r *Registry) getAllProtoInfo(protoFile string) ([]string, error) {
	result := make([]string, 0)

	var dfs func(protoFile string) error
	dfs = func(protoFile string) error {
		if _, ok := r.visited[protoFile]; ok {
			return nil
		}
		r.visited[protoFile] = struct{}{}

		protoBytes, err := os.ReadFile(protoFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		buf := bytes.NewBuffer(protoBytes)
		parsedBody, err := protoparser.Parse(buf)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", protoFile, err)
		}
		r.parsed[protoFile] = parsedBody

		for _, body := range parsedBody.ProtoBody {
			imp, ok := body.(*protoparserparser.Import)
			if !ok {
				continue
			}
			importPath := strings.Trim(imp.Location, `"`)
			fullImportPath, err := r.findIfProtoExists(importPath)
			if err != nil {
				return fmt.Errorf("import %s: %w", importPath, err)
			}
			if err = dfs(fullImportPath); err != nil {
				return err
			}
		}

		// Imports first so symbol registration sees dependencies early
		result = append(result, protoFile)
		return nil
	}

	protoPath, err := r.findIfProtoExists(protoFile)
	if err != nil {
		return nil, err
	}
	if err := dfs(protoPath); err != nil {
		return nil, err
	}
	return result, nil
}

// findIfProtoExists resolves protoPath against the configured proto
// directories and returns the first match.
func (r *Registry) findIfProtoExists(protoPath string) (string, error) {
	protoPath = strings.Trim(protoPath, `"`)
	if !strings.HasSuffix(protoPath, ".proto") {
		return "", fmt.Errorf("%s is not a .proto file", protoPath)
	}

	if path.IsAbs(protoPath) {
		if _, err := os.Stat(protoPath); err != nil {
			return "", fmt.Errorf("path does not exist: %s", protoPath)
		}
		return protoPath, nil
	}

	for _, dir := range r.ProtoDirectories {
		fullPath := path.Join(dir, protoPath)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("path does not exist: %s (searched %d proto directories)", protoPath, len(r.ProtoDirectories))
}

/*
getReferencedType resolves a type reference the way protoc scopes names:
innermost scope first, walking outward to the file package, with a leading
dot forcing fully-qualified lookup.
Ref - https://github.com/protocolbuffers/protobuf/blob/b7a5772caf08d62a20fd1bca258f501fa4db022c/src/google/protobuf/descriptor.proto#L186-L191
*/
func getReferencedType(typeName, prefix string, allResolvedEntities map[string]struct{}) (string, error) {
	// check if fully qualified prefixed by dot
	if strings.HasPrefix(typeName, ".") {
		return getFullyQualifiedType(typeName, allResolvedEntities)
	}
	// check if the entity is referenced to other packages via packageName
	if _, ok := allResolvedEntities[typeName]; ok {
		return typeName, nil
	}
	// try resolving from inner entities up till the parent package
	if result, ok := splitNameAndCheck(typeName, prefix, allResolvedEntities); ok {
		return result, nil
	}
	return "", fmt.Errorf("unable to resolve type name: %s", typeName)
}

// splitNameAndCheck splits the prefixName and tries to append the typeName
// and find the entity for resolution, dropping one scope level per round.
func splitNameAndCheck(typeName, prefix string, allResolvedEntities map[string]struct{}) (string, bool) {
	prefixSplit := strings.Split(prefix, ".")

	for len(prefixSplit) > 0 && prefixSplit[0] != "" {
		result := strings.Join(prefixSplit, ".")
		entityName := result + "." + typeName
		if _, ok := allResolvedEntities[entityName]; ok {
			return entityName, true
		}
		// Omit the last element in each iteration as we go level above to outer entity
		prefixSplit = prefixSplit[:len(prefixSplit)-1]
	}
	return "", false
}

func getFullyQualifiedType(typeName string, allResolvedEntities map[string]struct{}) (string, error) {
	typeName = strings.TrimPrefix(typeName, ".")
	if _, ok := allResolvedEntities[typeName]; ok {
		return typeName, nil
	}
	return "", fmt.Errorf("unable to resolve fully qualified type name: .%s", typeName)
}
