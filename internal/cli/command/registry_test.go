package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryKeys(t *testing.T) {
	commands := Registry()
	for _, key := range []string{
		"job submit", "job list", "job get", "job rejudge",
		"user create", "user list",
		"contest create", "contest list", "contest get", "contest ranklist",
	} {
		if _, ok := commands[key]; !ok {
			t.Fatalf("missing command %q", key)
		}
	}
}

func TestBuildRequestPathAndQuery(t *testing.T) {
	commands := Registry()

	params := Params{}
	params.Set("id", "3")
	params.Set("scoring_rule", "highest")
	req, err := BuildRequest(commands["contest ranklist"], params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.Method != "GET" || req.Path != "/contests/3/ranklist?scoring_rule=highest" {
		t.Fatalf("req = %+v", req)
	}

	params = Params{}
	if _, err := BuildRequest(commands["job get"], params); err == nil {
		t.Fatalf("expected missing path parameter error")
	}
}

func TestBuildSubmitRequestFromFile(t *testing.T) {
	source := filepath.Join(t.TempDir(), "main.rs")
	if err := os.WriteFile(source, []byte("fn main() {}\n"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	params := Params{}
	params.Set("lang", "Rust")
	params.Set("user_id", "0")
	params.Set("contest_id", "0")
	params.Set("problem_id", "1")
	params.Set("source_file", source)

	req, err := BuildRequest(Registry()["job submit"], params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var body struct {
		SourceCode string `json:"source_code"`
		Language   string `json:"language"`
		ProblemID  int64  `json:"problem_id"`
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Language != "Rust" || body.ProblemID != 1 {
		t.Fatalf("body = %+v", body)
	}
	if body.SourceCode != "fn main() {}\n" {
		t.Fatalf("source = %q", body.SourceCode)
	}
}

func TestBuildContestCreateRequest(t *testing.T) {
	params := Params{}
	params.Set("name", "weekly")
	params.Set("from", "2024-01-01T00:00:00.000Z")
	params.Set("to", "2024-01-02T00:00:00.000Z")
	params.Set("problem_ids", "0, 2")
	params.Set("user_ids", "1")
	params.Set("submission_limit", "3")

	req, err := BuildRequest(Registry()["contest create"], params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var body struct {
		ProblemIDs      []int64 `json:"problem_ids"`
		UserIDs         []int64 `json:"user_ids"`
		SubmissionLimit int     `json:"submission_limit"`
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(body.ProblemIDs) != 2 || body.ProblemIDs[1] != 2 {
		t.Fatalf("problem ids = %v", body.ProblemIDs)
	}
	if body.SubmissionLimit != 3 {
		t.Fatalf("submission limit = %d", body.SubmissionLimit)
	}
}
