package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Registry returns all CLI commands keyed by "service action".
func Registry() map[string]Command {
	commands := []Command{
		{
			Service:      "job",
			Action:       "submit",
			Method:       "POST",
			PathTemplate: "/jobs",
			Fields: []Field{
				{Name: "source_code", Aliases: []string{"code"}, Prompt: "source_code", Type: FieldString, Required: true},
				{Name: "language", Aliases: []string{"lang"}, Prompt: "language", Type: FieldString, Required: true},
				{Name: "user_id", Prompt: "user_id", Type: FieldInt64, Required: true},
				{Name: "contest_id", Prompt: "contest_id", Type: FieldInt64, Required: true},
				{Name: "problem_id", Prompt: "problem_id", Type: FieldInt64, Required: true},
				{Name: "source_file", Prompt: "source_file", Type: FieldFile, Required: false},
			},
		},
		{
			Service:      "job",
			Action:       "list",
			Method:       "GET",
			PathTemplate: "/jobs",
			Fields: []Field{
				{Name: "language", Type: FieldString, Query: true},
				{Name: "problem_id", Type: FieldInt64, Query: true},
				{Name: "result", Type: FieldString, Query: true},
				{Name: "state", Type: FieldString, Query: true},
			},
		},
		{
			Service:      "job",
			Action:       "get",
			Method:       "GET",
			PathTemplate: "/jobs/:id",
			Fields: []Field{
				{Name: "id", Prompt: "job_id", Type: FieldInt64, Required: true},
			},
		},
		{
			Service:      "job",
			Action:       "rejudge",
			Method:       "PUT",
			PathTemplate: "/jobs/:id",
			Fields: []Field{
				{Name: "id", Prompt: "job_id", Type: FieldInt64, Required: true},
			},
		},
		{
			Service:      "user",
			Action:       "create",
			Method:       "POST",
			PathTemplate: "/users",
			Fields: []Field{
				{Name: "name", Prompt: "name", Type: FieldString, Required: true},
				{Name: "id", Type: FieldInt64, Required: false},
			},
		},
		{
			Service:      "user",
			Action:       "list",
			Method:       "GET",
			PathTemplate: "/users",
		},
		{
			Service:      "contest",
			Action:       "create",
			Method:       "POST",
			PathTemplate: "/contests",
			Fields: []Field{
				{Name: "name", Prompt: "name", Type: FieldString, Required: true},
				{Name: "from", Prompt: "from", Type: FieldString, Required: true},
				{Name: "to", Prompt: "to", Type: FieldString, Required: true},
				{Name: "problem_ids", Prompt: "problem_ids (comma-separated)", Type: FieldInt64List, Required: true},
				{Name: "user_ids", Prompt: "user_ids (comma-separated)", Type: FieldInt64List, Required: true},
				{Name: "submission_limit", Prompt: "submission_limit", Type: FieldInt, Required: true},
				{Name: "id", Type: FieldInt64, Required: false},
			},
		},
		{
			Service:      "contest",
			Action:       "list",
			Method:       "GET",
			PathTemplate: "/contests",
		},
		{
			Service:      "contest",
			Action:       "get",
			Method:       "GET",
			PathTemplate: "/contests/:id",
			Fields: []Field{
				{Name: "id", Prompt: "contest_id", Type: FieldInt64, Required: true},
			},
		},
		{
			Service:      "contest",
			Action:       "ranklist",
			Method:       "GET",
			PathTemplate: "/contests/:id/ranklist",
			Fields: []Field{
				{Name: "id", Prompt: "contest_id", Type: FieldInt64, Required: true},
				{Name: "scoring_rule", Type: FieldString, Query: true},
				{Name: "tie_breaker", Type: FieldString, Query: true},
			},
		},
	}

	result := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		key := fmt.Sprintf("%s %s", cmd.Service, cmd.Action)
		result[key] = cmd
	}
	return result
}

// BuildRequest creates an HTTP request spec based on command.
func BuildRequest(cmd Command, params Params) (RequestSpec, error) {
	params.Canonicalize(cmd.Fields)
	path, err := buildPath(cmd.PathTemplate, params)
	if err != nil {
		return RequestSpec{}, err
	}
	if query := buildQuery(cmd, params); query != "" {
		path += "?" + query
	}

	var body []byte
	if cmd.Method != "GET" {
		payload, err := buildPayload(cmd, params)
		if err != nil {
			return RequestSpec{}, err
		}
		if payload != nil {
			body, err = json.Marshal(payload)
			if err != nil {
				return RequestSpec{}, fmt.Errorf("marshal request body failed: %w", err)
			}
		}
	}

	return RequestSpec{
		Method: cmd.Method,
		Path:   path,
		Body:   body,
	}, nil
}

func buildPath(template string, params Params) (string, error) {
	path := template
	if strings.Contains(path, ":id") {
		value := params.Get("id")
		if value == "" {
			return "", fmt.Errorf("missing path parameter: id")
		}
		path = strings.ReplaceAll(path, ":id", value)
	}
	return path, nil
}

func buildQuery(cmd Command, params Params) string {
	values := url.Values{}
	for _, field := range cmd.Fields {
		if !field.Query {
			continue
		}
		if value := params.Get(field.Name); value != "" {
			values.Set(field.Name, value)
		}
	}
	return values.Encode()
}

func buildPayload(cmd Command, params Params) (interface{}, error) {
	switch cmd.Service {
	case "job":
		if cmd.Action == "submit" {
			return buildSubmitPayload(params)
		}
	case "user":
		if cmd.Action == "create" {
			payload := map[string]interface{}{
				"name": params.Get("name"),
			}
			if params.Get("id") != "" {
				id, err := ParseInt64(params.Get("id"))
				if err != nil {
					return nil, fmt.Errorf("invalid id: %w", err)
				}
				payload["id"] = id
			}
			return payload, nil
		}
	case "contest":
		if cmd.Action == "create" {
			return buildContestPayload(params)
		}
	}
	return nil, nil
}

func buildSubmitPayload(params Params) (interface{}, error) {
	userID, err := ParseInt64(params.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	contestID, err := ParseInt64(params.Get("contest_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid contest_id: %w", err)
	}
	problemID, err := ParseInt64(params.Get("problem_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid problem_id: %w", err)
	}

	sourceCode := params.Get("source_code")
	if (sourceCode == "" || sourceCode == "_file_") && params.Get("source_file") != "" {
		sourceCode, err = ReadFile(params.Get("source_file"))
		if err != nil {
			return nil, err
		}
	}
	if sourceCode == "" {
		return nil, fmt.Errorf("source_code is required")
	}

	return map[string]interface{}{
		"source_code": sourceCode,
		"language":    params.Get("language"),
		"user_id":     userID,
		"contest_id":  contestID,
		"problem_id":  problemID,
	}, nil
}

func buildContestPayload(params Params) (interface{}, error) {
	problemIDs, err := ParseInt64List(params.Get("problem_ids"))
	if err != nil {
		return nil, fmt.Errorf("invalid problem_ids: %w", err)
	}
	userIDs, err := ParseInt64List(params.Get("user_ids"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_ids: %w", err)
	}
	limit, err := ParseInt(params.Get("submission_limit"))
	if err != nil {
		return nil, fmt.Errorf("invalid submission_limit: %w", err)
	}

	payload := map[string]interface{}{
		"name":             params.Get("name"),
		"from":             params.Get("from"),
		"to":               params.Get("to"),
		"problem_ids":      problemIDs,
		"user_ids":         userIDs,
		"submission_limit": limit,
	}
	if params.Get("id") != "" {
		id, err := ParseInt64(params.Get("id"))
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}
		payload["id"] = id
	}
	return payload, nil
}
