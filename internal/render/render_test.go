package render

import (
	"strings"
	"sync"
	"testing"
)

func TestMarkdownRendersContent(t *testing.T) {
	out, err := Markdown("# Heading\n\nbody text", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "body text") {
		t.Errorf("output missing content:\n%s", out)
	}
}

func TestMarkdownConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				if _, err := MarkdownWithWidth("some **bold** text", 60); err != nil {
					t.Errorf("MarkdownWithWidth: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestClearCache(t *testing.T) {
	if _, err := Markdown("warm the pool", DefaultOptions()); err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	ClearCache()
	if _, err := Markdown("after clear", DefaultOptions()); err != nil {
		t.Fatalf("Markdown after ClearCache: %v", err)
	}
}

func TestThemeSelection(t *testing.T) {
	t.Cleanup(func() { SetTUITheme("chatta") })

	if !SetTUITheme("dracula") {
		t.Fatal("SetTUITheme rejected dracula")
	}
	if GetTUITheme().Name != "dracula" {
		t.Errorf("active theme = %s", GetTUITheme().Name)
	}

	if SetTUITheme("solarized") {
		t.Error("SetTUITheme accepted an unknown theme")
	}
	if GetTUITheme().Name != "dracula" {
		t.Error("unknown theme name changed the active theme")
	}

	for _, name := range TUIThemeNames() {
		if _, ok := GetTUIThemeByName(name); !ok {
			t.Errorf("listed theme %q not resolvable", name)
		}
	}
}
