package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the documentation in sync with itself:
//  1. every topic listed in readme.md loads through GetTopic, and
//  2. every .md file next to it (readme.md aside) is listed in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	if len(topicsInReadme) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".md")
		if name == "readme" {
			continue
		}
		if !slices.Contains(topicsInReadme, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestGetAllTopicsExcludesReadme(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(all, "readme") {
		t.Error("readme should not be listed as a topic")
	}
	if !slices.IsSorted(all) {
		t.Errorf("topics are not sorted: %v", all)
	}
}

func TestGetTopicStar(t *testing.T) {
	got, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	all, _ := GetAllTopics()
	for _, topic := range all {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, content) {
			t.Errorf("star expansion is missing topic %q", topic)
		}
	}
}

func TestGetTopicUnknown(t *testing.T) {
	_, err := GetTopic("no-such-topic")
	if err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
	if !strings.Contains(err.Error(), `topic "no-such-topic" not found`) {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestTopicsStartWithTitle parses each topic and checks it opens with a
// level-1 heading, so the concatenated "*" output stays readable.
func TestTopicsStartWithTitle(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader([]byte(content)))
			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok {
				t.Fatalf("topic %q does not start with a heading", topic)
			}
			if h.Level != 1 {
				t.Errorf("topic %q starts with an h%d, want h1", topic, h.Level)
			}
		})
	}
}
