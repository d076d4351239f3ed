package cli

import "testing"

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("a very long client name", 10); got != "a very ..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Café Münsterländer GmbH", 10); got != "Café Mü..." {
		t.Errorf("truncate() = %q", got)
	}
}

func TestParseItemSpec(t *testing.T) {
	name, qty, price, err := parseItemSpec("Design work:2:50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Design work" || qty != "2" || price != "50" {
		t.Fatalf("got %q %q %q", name, qty, price)
	}

	name, _, _, err = parseItemSpec("Support: on-call:1:100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Support: on-call" {
		t.Fatalf("colon name split wrong: %q", name)
	}

	if _, _, _, err := parseItemSpec("no-numbers"); err == nil {
		t.Fatal("expected error for malformed spec")
	}
}
