package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/algebra"
	"github.com/aretw0/algebra/pkg/codec"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RulesURI is the resource listing the registered rules.
const RulesURI = "algebra://rules"

// Engine defines the interface required by the MCP server.
type Engine interface {
	ports.Engine
	Numeric() numeric.Context
	Registry() *registry.Registry
}

// ReduceArgs are the arguments of the reduce_expression tool.
type ReduceArgs struct {
	Expression string `json:"expression"`
	Format     string `json:"format,omitempty"`
}

// ReduceResult aligns with the HTTP response so both adapters return the same shape.
// Result holds the generic form of a codec.Document: the schema reflector
// cannot describe the recursive document type itself.
type ReduceResult struct {
	Result map[string]any `json:"result" jsonschema_description:"The canonical expression as a document"`
	Text   string         `json:"text" jsonschema_description:"The canonical expression in functional notation"`
}

// RulesResult lists the rule chains.
type RulesResult struct {
	Rules []registry.Description `json:"rules" jsonschema_description:"Registered rules grouped by tag in priority order"`
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("algebra-mcp", strings.TrimSpace(algebra.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	reduceTool := mcp.NewTool("reduce_expression",
		mcp.WithDescription("Reduce an algebraic expression to its canonical form."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The expression document, in JSON or YAML")),
		mcp.WithString("format", mcp.Description("Document format"), mcp.Enum("json", "yaml")),
		mcp.WithOutputSchema[ReduceResult](),
	)
	s.mcpServer.AddTool(reduceTool, mcp.NewStructuredToolHandler(s.handleReduce))

	rulesTool := mcp.NewTool("list_rules",
		mcp.WithDescription("List the rewrite rules of every tag, in priority order."),
		mcp.WithOutputSchema[RulesResult](),
	)
	s.mcpServer.AddTool(rulesTool, mcp.NewStructuredToolHandler(s.handleListRules))
}

func (s *Server) handleReduce(ctx context.Context, request mcp.CallToolRequest, args ReduceArgs) (ReduceResult, error) {
	format := codec.FormatJSON
	if args.Format != "" {
		f, err := codec.ParseFormat(args.Format)
		if err != nil {
			return ReduceResult{}, err
		}
		format = f
	}

	expr, err := codec.Parse([]byte(args.Expression), format, s.engine.Numeric())
	if err != nil {
		return ReduceResult{}, err
	}

	out, err := s.engine.Reduce(ctx, expr)
	if err != nil {
		return ReduceResult{}, fmt.Errorf("reduce failed: %w", err)
	}
	return ReduceResult{Result: codec.Encode(out).Map(), Text: out.String()}, nil
}

func (s *Server) handleListRules(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (RulesResult, error) {
	return RulesResult{Rules: s.engine.Registry().Describe()}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(RulesURI, "Registered Rules",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Registry().Describe())
		if err != nil {
			return nil, fmt.Errorf("failed to encode rules: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RulesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
