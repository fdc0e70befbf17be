package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/compose"

	"github.com/ff-agent/server/internal/agent/graph/nodes"
	"github.com/ff-agent/server/internal/agent/graph/observers"
	"github.com/ff-agent/server/internal/agent/model"
	logx "github.com/ff-agent/server/pkg/logger"
)

// Runner executes one conversation turn against the compiled graph.
type Runner interface {
	ProcessTurn(ctx context.Context, in model.TurnInput) (*model.TurnState, error)
}

// Config holds everything needed to compose the turn graph end-to-end. The
// flow definition is built once at process start and reused across requests;
// all mutable state lives in the per-turn TurnState plus the persisted
// per-thread profile.
type Config struct {
	Completer     model.Completer
	Searcher      model.ProductSearcher
	ProfileRepo   model.ProfileRepository
	Temperatures  model.TemperatureConfig
	SystemContext string
}

// GraphBuilder handles the construction of the turn graph.
type GraphBuilder struct {
	config *Config
	graph  *compose.Graph[model.TurnInput, *model.TurnState]
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *model.TurnState]
	repo     model.ProfileRepository

	// per-thread locks: concurrent turns on one thread key are not a
	// supported use case, so they are serialized trivially here.
	threads sync.Map // threadID -> *sync.Mutex
}

func (r *graphRunner) threadLock(threadID string) *sync.Mutex {
	mu, _ := r.threads.LoadOrStore(threadID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (r *graphRunner) ProcessTurn(ctx context.Context, in model.TurnInput) (*model.TurnState, error) {
	mu := r.threadLock(in.ThreadID)
	mu.Lock()
	defer mu.Unlock()

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("graph returned nil state")
	}

	// The turn produced user-visible content; a failed profile save must not
	// discard it. The stale profile simply resurfaces next turn.
	if err := r.repo.Save(ctx, in.ThreadID, out.Profile); err != nil {
		logx.Error().Err(err).Str("thread_id", in.ThreadID).Msg("failed to persist profile")
	}

	return out, nil
}

// BuildTurnGraph composes and compiles the conversation turn graph and
// returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Completer == nil {
		return nil, fmt.Errorf("completer is nil")
	}
	if cfg.Searcher == nil {
		return nil, fmt.Errorf("product searcher is nil")
	}
	if cfg.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repo is nil")
	}

	builder := &GraphBuilder{
		config: &cfg,
		graph:  compose.NewGraph[model.TurnInput, *model.TurnState](),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranch(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable, repo: cfg.ProfileRepo}, nil
}

// addNodes adds all processing nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeRouter,
		nodes.NewRouterNode(b.config.ProfileRepo),
	)
	b.graph.AddLambdaNode(nodes.NodeApplyChoice,
		nodes.NewApplyChoiceNode(),
	)
	b.graph.AddLambdaNode(nodes.NodeExtractProfile,
		nodes.NewExtractProfileNode(b.config.Completer, b.config.Temperatures),
	)
	b.graph.AddLambdaNode(nodes.NodeCheckClarify,
		nodes.NewCheckClarifyNode(),
	)
	b.graph.AddLambdaNode(nodes.NodeClarify,
		nodes.NewClarifyNode(b.config.Completer, b.config.Temperatures, b.config.SystemContext),
	)
	b.graph.AddLambdaNode(nodes.NodeAnswer,
		nodes.NewAnswerNode(b.config.Completer, b.config.Searcher, b.config.Temperatures, b.config.SystemContext),
	)
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeRouter},
		{nodes.NodeRouter, nodes.NodeApplyChoice},
		{nodes.NodeApplyChoice, nodes.NodeExtractProfile},
		{nodes.NodeExtractProfile, nodes.NodeCheckClarify},
		{nodes.NodeClarify, compose.END},
		{nodes.NodeAnswer, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranch creates the single conditional routing branch of the flow.
func (b *GraphBuilder) addBranch() error {
	clarifyBranch := compose.NewGraphBranch(
		nodes.NewClarifyCondition(),
		map[string]bool{
			nodes.NodeClarify: true,
			nodes.NodeAnswer:  true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeCheckClarify, clarifyBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding clarify branch")
		return fmt.Errorf("error adding clarify branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TurnInput, *model.TurnState], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
