package provision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest names the resources to provision. Loaded from a YAML file;
// missing fields fall back to the defaults below.
type Manifest struct {
	Region       string `yaml:"region"`
	TableName    string `yaml:"table_name"`
	BucketName   string `yaml:"bucket_name"`
	FunctionName string `yaml:"function_name"`
	APIName      string `yaml:"api_name"`
	RoleARN      string `yaml:"role_arn"`
	Runtime      string `yaml:"runtime"`
	Handler      string `yaml:"handler"`
	CodePath     string `yaml:"code_path"`
}

// DefaultManifest returns the stock resource names.
func DefaultManifest() Manifest {
	return Manifest{
		Region:       "us-east-1",
		TableName:    "Movies",
		BucketName:   "movies-theme-song-bucket",
		FunctionName: "MovieThemeFinderAPI",
		APIName:      "MovieThemeFinderAPI",
		RoleARN:      os.Getenv("AWS_LAMBDA_ROLE_ARN"),
		Runtime:      "provided.al2023",
		Handler:      "bootstrap",
		CodePath:     "lambda_function.zip",
	}
}

// LoadManifest reads a manifest file over the defaults. A missing file is
// not an error; the defaults apply as-is.
func LoadManifest(path string) (Manifest, error) {
	manifest := DefaultManifest()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply as-is.
	case err != nil:
		return manifest, fmt.Errorf("failed to read manifest: %w", err)
	default:
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return manifest, fmt.Errorf("failed to parse manifest: %w", err)
		}
	}

	if manifest.RoleARN == "" {
		return manifest, fmt.Errorf("role_arn is required (or set AWS_LAMBDA_ROLE_ARN)")
	}
	return manifest, nil
}
