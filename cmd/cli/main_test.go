package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

const acceptanceStatement = "Date || Amount || Balance\n" +
	"14/01/2012 || -500 || 2500\n" +
	"13/01/2012 || 2000 || 3000\n" +
	"10/01/2012 || 1000 || 1000\n"

func TestDemoCmd(t *testing.T) {
	out, _, err := execute(t, "", "demo")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if out != acceptanceStatement {
		t.Fatalf("unexpected statement:\n%s", out)
	}
}

func TestRunCmd_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.txt")
	if err := os.WriteFile(path, []byte(demoScript), 0o600); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	out, _, err := execute(t, "", "run", path)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if out != acceptanceStatement {
		t.Fatalf("unexpected statement:\n%s", out)
	}
}

func TestRunCmd_LogsRejectionsAndContinues(t *testing.T) {
	src := "2012-01-10 withdraw 100\nprint\n"

	out, errOut, err := execute(t, src, "run", "-", "--log-format", "json")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if out != "Date || Amount || Balance\n" {
		t.Fatalf("expected header only, got %q", out)
	}
	if !strings.Contains(errOut, "transaction rejected") || !strings.Contains(errOut, "balance 0, requested 100") {
		t.Fatalf("expected rejection to be logged, got %q", errOut)
	}
}

func TestRunCmd_FailFast(t *testing.T) {
	src := "2012-01-10 deposit 0\nprint\n"

	out, _, err := execute(t, src, "run", "-", "--fail-fast")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected line number in error, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no statement, got %q", out)
	}
}

func TestRunCmd_ParseError(t *testing.T) {
	_, _, err := execute(t, "2012-01-10 deposit 1.5\n", "run", "-")
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected parse error for line 1, got %v", err)
	}
}

func TestStatementCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/account/statement" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(acceptanceStatement))
	}))
	defer srv.Close()

	out, _, err := execute(t, "", "statement", "--url", srv.URL)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if out != acceptanceStatement {
		t.Fatalf("unexpected statement:\n%s", out)
	}
}

func TestConsistencyCmd(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		wantOut string
	}{
		{
			name:    "passes",
			status:  http.StatusOK,
			body:    `{"consistent":true,"status":"ok"}`,
			wantOut: "Consistency check PASSED\nConsistent: true\nStatus: ok\n",
		},
		{
			name:    "fails",
			status:  http.StatusConflict,
			body:    `{"consistent":false,"status":"ledger is inconsistent"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out, _, err := execute(t, "", "consistency", "--url", srv.URL)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if out != tt.wantOut {
				t.Fatalf("unexpected output %q", out)
			}
		})
	}
}
