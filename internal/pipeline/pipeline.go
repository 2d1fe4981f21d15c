// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline runs one README generation: it obtains the repository
// source, analyzes it, composes the narrative and tech stack, and
// assembles the document. A Runner keeps no state between runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/petar-djukic/go-readme/internal/archetype"
	"github.com/petar-djukic/go-readme/internal/classify"
	"github.com/petar-djukic/go-readme/internal/document"
	"github.com/petar-djukic/go-readme/internal/git"
	"github.com/petar-djukic/go-readme/internal/github"
	"github.com/petar-djukic/go-readme/internal/llm"
	"github.com/petar-djukic/go-readme/internal/logging"
	"github.com/petar-djukic/go-readme/internal/narrative"
	"github.com/petar-djukic/go-readme/internal/repomap"
	"github.com/petar-djukic/go-readme/internal/techstack"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// Mode selects how the repository source is obtained.
type Mode string

const (
	// ModeClone shallow-clones the repository; metadata is best-effort.
	ModeClone Mode = "clone"
	// ModeAPI reads metadata and the file tree from the hosting API;
	// metadata is required.
	ModeAPI Mode = "api"
)

// Partial field names added by the pipeline itself.
const (
	PartialMetadata = "metadata"
	PartialTree     = "tree"
)

// ErrUnknownMode is returned for a Mode other than clone or api.
var ErrUnknownMode = errors.New("unknown source mode")

// Request is one generation request.
type Request struct {
	RepoURL    string
	Mode       Mode   // default ModeClone
	Token      string // GitHub token; overrides Deps.Token
	Augment    bool   // ask the generative-text backend to improve the prose
	Credential string // generative-text credential; overrides the default
	Social     document.Social
	Coffee     string
	Contact    document.Contact
}

// Result is the outcome of a run.
type Result struct {
	Markdown  string
	Name      string
	URL       string
	Profile   types.ProjectProfile
	Languages []types.LanguageStat
	Metadata  *types.RemoteRepoMetadata // nil when not fetched
	Partial   []string                  // degraded sub-fetches
	Augmented bool
	Usage     types.TokenUsage
	Revision  *git.Revision // set for clones with readable HEAD
	Elapsed   time.Duration
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Cloner       Cloner           // default GitCloner
	Metadata     MetadataFactory  // default GitHub API over http.DefaultClient
	Generator    GeneratorFactory // nil disables augmentation
	Token        string           // default GitHub token
	CloneDepth   int
	CloneTimeout time.Duration
	TempDir      string
	Logger       *pterm.Logger
}

// Runner executes generation requests.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Cloner == nil {
		deps.Cloner = GitCloner{}
	}
	if deps.Metadata == nil {
		deps.Metadata = GitHubMetadata(nil, deps.Logger)
	}
	return &Runner{deps: deps}
}

// source is what a run reads files and metadata from.
type source struct {
	files    types.FileSource
	metadata *types.RemoteRepoMetadata
	revision *git.Revision
	partial  []string
	close    func()
}

// Run executes one request. Only an invalid reference or an unobtainable
// repository fails the run; every other problem degrades the document.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	log := r.deps.Logger

	ref, err := github.ParseRepoURL(req.RepoURL)
	if err != nil {
		return nil, err
	}
	mode := req.Mode
	if mode == "" {
		mode = ModeClone
	}
	token := req.Token
	if token == "" {
		token = r.deps.Token
	}

	var src *source
	switch mode {
	case ModeClone:
		src, err = r.cloneSource(ctx, ref, token)
	case ModeAPI:
		src, err = r.apiSource(ctx, ref, token)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		log.Error("repository unavailable", log.Args("repo", ref.FullName(), "mode", string(mode), "error", err.Error()))
		return nil, err
	}
	defer src.close()

	result := r.build(ctx, ref, req, src)
	result.Elapsed = time.Since(start)
	log.Info("readme generated", log.Args(
		"repo", ref.FullName(),
		"mode", string(mode),
		"type", result.Profile.ProjectType.String(),
		"partial", len(result.Partial),
		"augmented", result.Augmented,
		"elapsed", result.Elapsed.String(),
	))
	return result, nil
}

// cloneSource clones the repository. Metadata is fetched too, but its
// failure only degrades the result.
func (r *Runner) cloneSource(ctx context.Context, ref github.RepoRef, token string) (*source, error) {
	co, err := r.deps.Cloner.Clone(ctx, git.CloneOptions{
		URL:     ref.CloneURL(),
		Token:   token,
		Depth:   r.deps.CloneDepth,
		Timeout: r.deps.CloneTimeout,
		TempDir: r.deps.TempDir,
	})
	if err != nil {
		return nil, err
	}

	src := &source{files: co, close: func() {
		if err := co.Close(); err != nil {
			r.deps.Logger.Warn("checkout cleanup failed", r.deps.Logger.Args("repo", ref.FullName(), "error", err.Error()))
		}
	}}
	if rev, err := co.Head(); err == nil {
		src.revision = &rev
	}

	md, err := r.deps.Metadata(token).FetchMetadata(ctx, ref)
	if err != nil {
		r.deps.Logger.Warn("metadata unavailable", r.deps.Logger.Args("repo", ref.FullName(), "error", err.Error()))
		src.partial = append(src.partial, PartialMetadata)
	} else {
		src.metadata = md
	}
	return src, nil
}

// apiSource reads metadata and the file tree from the API. Metadata is
// required; a missing tree leaves an empty file listing.
func (r *Runner) apiSource(ctx context.Context, ref github.RepoRef, token string) (*source, error) {
	client := r.deps.Metadata(token)
	md, err := client.FetchMetadata(ctx, ref)
	if err != nil {
		return nil, err
	}

	src := &source{metadata: md, close: func() {}}
	tree, err := client.FetchTree(ctx, ref, md.DefaultBranch)
	if err != nil {
		r.deps.Logger.Warn("file tree unavailable", r.deps.Logger.Args("repo", ref.FullName(), "error", err.Error()))
		src.partial = append(src.partial, PartialTree)
		tree = emptyFiles{}
	}
	src.files = tree
	return src, nil
}

// build runs the in-memory stages over an obtained source.
func (r *Runner) build(ctx context.Context, ref github.RepoRef, req Request, src *source) *Result {
	log := r.deps.Logger
	md := src.metadata
	files := src.files.ListFiles()

	name := ref.Name
	var description, language, license string
	var topics []string
	if md != nil {
		if md.Name != "" {
			name = md.Name
		}
		description = md.Description
		language = md.Language
		license = md.License
		topics = md.Topics
	}

	profile := archetype.Analyze(files, name)
	stack := techstack.Compose(techstack.Input{
		Profile:  profile,
		Files:    files,
		Source:   src.files,
		Language: language,
	})

	base := narrative.Generate(narrative.Input{
		Name:        name,
		Description: description,
		Language:    stack.PrimaryLanguage,
		Profile:     profile,
		Files:       files,
		Topics:      topics,
	})
	inventory := archetype.Inventory(files)

	result := &Result{
		Name:      name,
		URL:       ref.URL(),
		Profile:   profile,
		Languages: classify.LanguageStats(files),
		Metadata:  md,
		Revision:  src.revision,
	}
	result.Partial = append(result.Partial, src.partial...)
	if md != nil {
		result.Partial = append(result.Partial, md.Partial...)
	}

	story := base
	if req.Augment {
		story, result.Augmented, result.Usage = r.augment(ctx, req, base, llm.AugmentData{
			Name:        name,
			Description: description,
			ProjectType: profile.ProjectType.String(),
			Purpose:     profile.PrimaryPurpose,
			Language:    stack.PrimaryLanguage,
			Framework:   profile.FrameworkDetected,
			Database:    profile.DatabaseDetected,
			Files:       inventory,
			Topics:      topics,
			Overview:    base.Overview,
			Features:    base.Features,
		})
	}

	var components []types.KeyComponent
	if src.files.Root() != "" {
		var err error
		components, err = repomap.KeyComponents(ctx, src.files)
		if err != nil {
			log.Debug("key components skipped", log.Args("repo", ref.FullName(), "error", err.Error()))
		}
	}

	result.Markdown = document.Assemble(document.Data{
		Name:          name,
		URL:           ref.URL(),
		Profile:       profile,
		Stack:         stack,
		Narrative:     story,
		Languages:     result.Languages,
		Inventory:     inventory,
		Instructions:  techstack.DetectInstructions(src.files),
		License:       document.LicenseText(license, files),
		Metadata:      md,
		KeyComponents: components,
		Social:        req.Social,
		Coffee:        req.Coffee,
		Contact:       req.Contact,
	})
	return result
}

// augment asks the generative-text backend to improve base. Failures are
// logged and base is returned unchanged.
func (r *Runner) augment(ctx context.Context, req Request, base narrative.Narrative, data llm.AugmentData) (narrative.Narrative, bool, types.TokenUsage) {
	log := r.deps.Logger
	if r.deps.Generator == nil {
		log.Debug("augmentation skipped", log.Args("reason", narrative.ErrNoGenerator.Error()))
		return base, false, types.TokenUsage{}
	}

	completer, err := r.deps.Generator(ctx, req.Credential)
	if err != nil {
		log.Debug("augmentation skipped", log.Args("error", err.Error()))
		return base, false, types.TokenUsage{}
	}
	prompt, err := llm.RenderAugmentPrompt(data)
	if err != nil {
		log.Debug("augmentation skipped", log.Args("error", err.Error()))
		return base, false, types.TokenUsage{}
	}

	rec := &usageRecorder{c: completer}
	out, err := narrative.Augment(ctx, rec, prompt, base)
	if err != nil {
		log.Debug("augmentation failed", log.Args("error", err.Error()))
		return base, false, rec.usage
	}
	return out, true, rec.usage
}

// emptyFiles is a source with no files.
type emptyFiles struct{}

func (emptyFiles) ListFiles() []string        { return nil }
func (emptyFiles) FileExists(string) bool     { return false }
func (emptyFiles) ReadTextFile(string) string { return "" }
func (emptyFiles) Root() string               { return "" }
