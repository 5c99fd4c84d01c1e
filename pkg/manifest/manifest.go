// Package manifest reads the project descriptors a generator run depends on.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	PackageJSON  = "package.json"
	ComposerJSON = "composer.json"
)

// ErrMissingManifest is returned when a required descriptor is absent.
var ErrMissingManifest = errors.New("manifest file not found")

// Package holds the fields read from package.json.
type Package struct {
	Name       string
	NodeEngine string
}

// Composer holds the fields read from composer.json.
type Composer struct {
	Name       string
	PHPVersion string
}

// ReadPackage reads dir/package.json. The name field is required.
func ReadPackage(dir string) (*Package, error) {
	data, err := readManifest(dir, PackageJSON)
	if err != nil {
		return nil, err
	}

	name := gjson.GetBytes(data, "name").String()
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s has no \"name\" field", PackageJSON)
	}

	return &Package{
		Name:       name,
		NodeEngine: gjson.GetBytes(data, "engines.node").String(),
	}, nil
}

// ReadComposer reads dir/composer.json. Only its presence is required.
func ReadComposer(dir string) (*Composer, error) {
	data, err := readManifest(dir, ComposerJSON)
	if err != nil {
		return nil, err
	}

	return &Composer{
		Name:       gjson.GetBytes(data, "name").String(),
		PHPVersion: gjson.GetBytes(data, "require.php").String(),
	}, nil
}

// Exists reports whether dir contains the named manifest.
func Exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func readManifest(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found in %s: %w", name, dir, ErrMissingManifest)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse %s: invalid JSON", name)
	}
	return data, nil
}
