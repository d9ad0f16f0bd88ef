package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// VerdictResult is the structured output of the validation tools.
type VerdictResult struct {
	Valid  bool              `json:"valid" jsonschema_description:"Whether every checked field passed"`
	Errors map[string]string `json:"errors,omitempty" jsonschema_description:"One message per failing field"`
	Stage  int               `json:"stage,omitempty" jsonschema_description:"The stage that was checked, if any"`
}

// FieldResult is the structured output of validate_field.
type FieldResult struct {
	Field string `json:"field" jsonschema_description:"The field that was checked"`
	Valid bool   `json:"valid" jsonschema_description:"Whether the value passed"`
	Error string `json:"error,omitempty" jsonschema_description:"The failure message"`
	Kind  string `json:"kind,omitempty" jsonschema_description:"parse_error, constraint_violation or cross_field_violation"`
}

// Server exposes the validation engine as MCP tools, so an agent filling a
// registration on someone's behalf can check its work before submitting.
type Server struct {
	engine    ports.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("onboard-mcp", strings.TrimSpace(onboard.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for transports other than stdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_stages",
		mcp.WithDescription("List the registration stages and the fields each one owns, in order."),
	), s.handleListStages)

	s.mcpServer.AddTool(mcp.NewTool("validate_record",
		mcp.WithDescription("Validate a complete registration record, including cross-field rules."),
		mcp.WithString("record", mcp.Required(), mcp.Description("JSON object of field values")),
		mcp.WithOutputSchema[VerdictResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateRecord))

	s.mcpServer.AddTool(mcp.NewTool("validate_stage",
		mcp.WithDescription("Validate only the fields of one stage, as the form does before moving forward."),
		mcp.WithNumber("stage", mcp.Required(), mcp.Description("1-based stage index")),
		mcp.WithString("record", mcp.Required(), mcp.Description("JSON object of field values")),
		mcp.WithOutputSchema[VerdictResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateStage))

	s.mcpServer.AddTool(mcp.NewTool("validate_field",
		mcp.WithDescription("Validate a single field value, optionally against the rest of the record."),
		mcp.WithString("field", mcp.Required(), mcp.Description("Field name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON encoded value, e.g. \"Jane\" or true")),
		mcp.WithString("record", mcp.Description("JSON object with the other field values (optional)")),
		mcp.WithOutputSchema[FieldResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateField))
}

func (s *Server) handleListStages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.engine.Stages())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode stages: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidateRecord(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (VerdictResult, error) {
	record, err := parseRecord(args["record"])
	if err != nil {
		return VerdictResult{}, err
	}
	v := s.engine.ValidateRecord(ctx, record)
	return VerdictResult{Valid: v.Valid, Errors: v.Errors}, nil
}

func (s *Server) handleValidateStage(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (VerdictResult, error) {
	n, ok := args["stage"].(float64)
	if !ok || n != math.Trunc(n) {
		return VerdictResult{}, fmt.Errorf("stage must be an integer, got %v", args["stage"])
	}
	fields, err := s.engine.FieldsForStage(int(n))
	if err != nil {
		return VerdictResult{}, err
	}
	record, err := parseRecord(args["record"])
	if err != nil {
		return VerdictResult{}, err
	}

	v := s.engine.ValidateSubset(ctx, record, fields...)
	return VerdictResult{Valid: v.Valid, Errors: v.Errors, Stage: int(n)}, nil
}

func (s *Server) handleValidateField(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FieldResult, error) {
	field, _ := args["field"].(string)
	f, ok := s.engine.Schema().Lookup(field)
	if !ok {
		return FieldResult{}, fmt.Errorf("unknown field %q", field)
	}
	value := fieldValue(f, args["value"])

	var record map[string]any
	if args["record"] != nil {
		var err error
		if record, err = parseRecord(args["record"]); err != nil {
			return FieldResult{}, err
		}
	}

	res := FieldResult{Field: field, Valid: true}
	if err := s.engine.ValidateField(ctx, field, value, record); err != nil {
		res.Valid = false
		res.Error = err.Error()
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			res.Error = verr.Reason
			res.Kind = string(verr.Kind)
		}
	}
	return res, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("onboard://schema", "Registration Schema",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Schema())
		if err != nil {
			return nil, fmt.Errorf("failed to describe schema: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "onboard://schema",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// fieldValue turns the tool argument into the raw value a form would send.
// String fields take the text verbatim. Other fields may carry a JSON
// literal such as true or null; anything that does not decode is kept as is.
func fieldValue(f *schema.Field, v any) any {
	raw, ok := v.(string)
	if !ok || f.Type().Name() == "string" {
		return v
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	return decoded
}

// parseRecord accepts a JSON object either encoded as a string or already decoded.
func parseRecord(v any) (map[string]any, error) {
	switch rec := v.(type) {
	case map[string]any:
		return rec, nil
	case string:
		record := make(map[string]any)
		if err := json.Unmarshal([]byte(rec), &record); err != nil {
			return nil, fmt.Errorf("record must be a JSON object: %w", err)
		}
		return record, nil
	case nil:
		return nil, fmt.Errorf("record is required")
	default:
		return nil, fmt.Errorf("record must be a JSON object, got %T", v)
	}
}
