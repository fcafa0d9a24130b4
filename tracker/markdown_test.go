package tracker

import "testing"

func TestMarkdownEmptyProject(t *testing.T) {
	detail := ProjectDetail{Project: Project{ID: 1, Title: "Empty"}}

	want := "# Empty\n\n### Summary : 0/0 Completed\n\n## Pending\n\n## Completed\n"
	if got := Markdown(detail); got != want {
		t.Fatalf("unexpected markdown:\n%q\nwant\n%q", got, want)
	}
}

func TestMarkdownOrdersBySectionThenServerOrder(t *testing.T) {
	detail := ProjectDetail{
		Project: Project{ID: 1, Title: "Move"},
		Tasks: []Task{
			{ID: 4, Description: "Pack kitchen", Status: StatusDone},
			{ID: 2, Description: "Call movers", Status: StatusNotDone},
			{ID: 9, Description: "Label boxes", Status: StatusDone},
			{ID: 1, Description: "Change address", Status: StatusNotDone},
		},
		DeletedTasks: []Task{
			{ID: 5, Description: "Sell couch", Status: StatusNotDone},
		},
	}

	want := "# Move\n\n### Summary : 2/4 Completed\n\n" +
		"## Pending\n\n- [ ] Call movers\n- [ ] Change address\n\n" +
		"## Completed\n\n- [x] Pack kitchen\n- [x] Label boxes\n"
	got := Markdown(detail)
	if got != want {
		t.Fatalf("unexpected markdown:\n%q\nwant\n%q", got, want)
	}
	if again := Markdown(detail); again != got {
		t.Fatal("expected identical output for identical input")
	}
}

func TestMarkdownKeepsEntriesOnOneLine(t *testing.T) {
	detail := ProjectDetail{
		Project: Project{ID: 1, Title: "  Weekend\nplans "},
		Tasks: []Task{
			{ID: 1, Description: "Buy\n## not a heading", Status: StatusNotDone},
		},
	}

	want := "# Weekend plans\n\n### Summary : 0/1 Completed\n\n## Pending\n\n- [ ] Buy ## not a heading\n\n## Completed\n"
	if got := Markdown(detail); got != want {
		t.Fatalf("unexpected markdown:\n%q\nwant\n%q", got, want)
	}
}

func TestSummaryIgnoresDeletedTasks(t *testing.T) {
	detail := ProjectDetail{
		Tasks:        []Task{{ID: 1, Status: StatusDone}, {ID: 2, Status: StatusNotDone}},
		DeletedTasks: []Task{{ID: 3, Status: StatusDone}},
	}
	done, total := Summary(detail)
	if done != 1 || total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", done, total)
	}
}

func TestMarkdownFilename(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{title: "Trip", want: "Trip-tasks.md"},
		{title: "Q1/Q2 plan", want: "Q1_Q2 plan-tasks.md"},
		{title: `a:b*c?"d"<e>|f\g`, want: "a_b_c__d__e__f_g-tasks.md"},
		{title: " .. ", want: "project-tasks.md"},
		{title: "", want: "project-tasks.md"},
		{title: "Line\nbreak", want: "Line break-tasks.md"},
	}
	for _, tc := range cases {
		if got := MarkdownFilename(tc.title); got != tc.want {
			t.Errorf("MarkdownFilename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestGistFile(t *testing.T) {
	detail := ProjectDetail{Project: Project{ID: 1, Title: "Trip"}}
	file := GistFile(detail)
	if file.Description != "Trip - Task List" {
		t.Errorf("unexpected description %q", file.Description)
	}
	if file.Filename != "Trip-tasks.md" {
		t.Errorf("unexpected filename %q", file.Filename)
	}
	if file.Content != Markdown(detail) {
		t.Errorf("unexpected content %q", file.Content)
	}
}
