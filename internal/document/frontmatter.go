package document

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontMatterPattern = regexp.MustCompile(`(?s)\A---\r?\n(.+?)\r?\n---`)

// FrontMatter reads the title and tags from a note's YAML header. Notes
// without one, or with a header that does not parse, yield zero values.
func FrontMatter(content []byte) (title string, tags []string) {
	match := frontMatterPattern.FindSubmatch(content)
	if len(match) < 2 {
		return "", nil
	}

	var data struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(match[1], &data); err != nil {
		return "", nil
	}

	return strings.TrimSpace(data.Title), data.Tags
}
