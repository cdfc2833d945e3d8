package notebook

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Metadata 是 jupytext 写入 front matter 的关键信息，仅用于日志
type Metadata struct {
	FormatName      string
	FormatVersion   string
	JupytextVersion string
	KernelName      string
	KernelLanguage  string
	KernelDisplay   string
}

type frontMatterEnvelope struct {
	Jupytext struct {
		TextRepresentation struct {
			Extension       string `yaml:"extension"`
			FormatName      string `yaml:"format_name"`
			FormatVersion   string `yaml:"format_version"`
			JupytextVersion string `yaml:"jupytext_version"`
		} `yaml:"text_representation"`
	} `yaml:"jupytext"`
	Kernelspec struct {
		DisplayName string `yaml:"display_name"`
		Language    string `yaml:"language"`
		Name        string `yaml:"name"`
	} `yaml:"kernelspec"`
}

// ParseMetadata 解析文件开头的 YAML front matter
func ParseMetadata(content []byte) (Metadata, error) {
	var env frontMatterEnvelope
	if _, err := frontmatter.Parse(bytes.NewReader(content), &env); err != nil {
		return Metadata{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	rep := env.Jupytext.TextRepresentation
	return Metadata{
		FormatName:      rep.FormatName,
		FormatVersion:   rep.FormatVersion,
		JupytextVersion: rep.JupytextVersion,
		KernelName:      env.Kernelspec.Name,
		KernelLanguage:  env.Kernelspec.Language,
		KernelDisplay:   env.Kernelspec.DisplayName,
	}, nil
}
