package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"status 1 done", TypeStatus},
		{"/delete 2", TypeDelete},
		{"rm ab12", TypeDelete},
		{"notify 1 off", TypeNotify},
		{"goto tomorrow", TypeGoto},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptionalTimeAndPriority(t *testing.T) {
	cases := []struct {
		in       string
		title    string
		clock    string
		priority model.Priority
	}{
		{"/add Pay bills", "Pay bills", "", model.PriorityMedium},
		{"/add 09:00 high Pay bills", "Pay bills", "09:00", model.PriorityHigh},
		{"/add low 18:30 Walk the dog", "Walk the dog", "18:30", model.PriorityLow},
		{"/add 07:15 call high school", "call high school", "07:15", model.PriorityMedium},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		a := cmd.Add
		if a.Title != tc.title || a.Time != tc.clock || a.Priority != tc.priority {
			t.Fatalf("parse %q = %+v", tc.in, *a)
		}
	}
}

func TestParseStatusAcceptsSpacedStatus(t *testing.T) {
	cmd, err := Parse("status 3 in progress")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Status.Target.Index != 3 || cmd.Status.Status != model.StatusInProgress {
		t.Fatalf("unexpected status args: %+v", *cmd.Status)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"  /  ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"/add", ErrCodeInvalidArgument},
		{"/add 09:00 high", ErrCodeInvalidArgument},
		{"status 1", ErrCodeInvalidArgument},
		{"status 1 finished", ErrCodeInvalidArgument},
		{"status 0 done", ErrCodeInvalidArgument},
		{"delete", ErrCodeInvalidArgument},
		{"notify 1 maybe", ErrCodeInvalidArgument},
		{"goto 2024-13-01", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestGotoResolve(t *testing.T) {
	today := time.Date(2024, 6, 30, 15, 4, 0, 0, time.UTC)
	cases := map[string]string{
		"goto today":      "2024-06-30",
		"goto tomorrow":   "2024-07-01",
		"goto yesterday":  "2024-06-29",
		"goto 2024-01-05": "2024-01-05",
	}
	for in, want := range cases {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := model.FormatDate(cmd.Goto.Resolve(today)); got != want {
			t.Fatalf("%q resolved to %s, want %s", in, got, want)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("notify 1 on")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

func TestResolveRef(t *testing.T) {
	tasks := []model.Task{
		{ID: "ab12-0001", Title: "first"},
		{ID: "ab34-0002", Title: "second"},
		{ID: "cd56-0003", Title: "third"},
	}

	got, err := ResolveRef(Ref{Index: 2}, tasks)
	if err != nil || got.Title != "second" {
		t.Fatalf("index ref: %+v %v", got, err)
	}
	got, err = ResolveRef(Ref{IDPrefix: "cd"}, tasks)
	if err != nil || got.Title != "third" {
		t.Fatalf("prefix ref: %+v %v", got, err)
	}
	if _, err := ResolveRef(Ref{IDPrefix: "ab"}, tasks); err == nil {
		t.Fatal("expected ambiguous prefix error")
	}
	if _, err := ResolveRef(Ref{Index: 4}, tasks); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := ResolveRef(Ref{IDPrefix: "zz"}, tasks); err == nil {
		t.Fatal("expected no match error")
	}
}
