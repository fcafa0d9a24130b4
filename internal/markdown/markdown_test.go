package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := SafeRender(renderWidth, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestRenderEmptyInput(t *testing.T) {
	if out := Render(80, 0, nil); out != nil {
		t.Fatalf("expected nil for empty input, got %q", out)
	}
	if out := Render(80, 0, []byte(" \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", out)
	}
}

func TestRenderChecklistKeepsTaskText(t *testing.T) {
	input := "# Trip\n\n## Pending\n\n- [ ] Book flight\n\n## Completed\n\n- [x] Pack bags\n"

	out := string(Render(80, 2, []byte(input)))
	for _, want := range []string{"Trip", "Book flight", "Pack bags"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected rendered output to contain %q, got:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "  ") {
			t.Fatalf("expected every line indented, got %q", line)
		}
	}
}
