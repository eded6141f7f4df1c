package app

import (
	"flag"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
)

func sinceContext(t *testing.T, since string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("start", flag.ContinueOnError)
	_ = f.String("since", "", "")

	if since != "" {
		if err := f.Set("since", since); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestMutationTimeDefaultsToNow(t *testing.T) {
	got, err := mutationTime(sinceContext(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if time.Since(got) > time.Minute {
		t.Errorf("expected a time close to now, but got: %v", got)
	}
}

func TestMutationTimeParsesSince(t *testing.T) {
	got, err := mutationTime(sinceContext(t, "10 minutes ago"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	elapsed := time.Since(got)
	if elapsed < 9*time.Minute || elapsed > 11*time.Minute {
		t.Errorf("expected a time roughly 10 minutes ago, but got: %v", got)
	}
}

func TestMutationTimeRejectsFuture(t *testing.T) {
	_, err := mutationTime(sinceContext(t, "in 2 hours"))
	if err == nil {
		t.Fatal("expected an error for a future since time")
	}
}

func TestMutationTimeRejectsGarbage(t *testing.T) {
	_, err := mutationTime(sinceContext(t, "%% not a time %%"))
	if err == nil {
		t.Fatal("expected an error for unparseable input")
	}
}
