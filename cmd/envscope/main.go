package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/velmie/x/envscope"
)

type options struct {
	key       string
	prefix    string
	namespace string
	target    string
	defVal    string
	envFiles  []string
	yamlFiles []string
	verbose   bool
}

func main() {
	app := kingpin.New("envscope", "Resolves a configuration key through the layered prefix/namespace/target fallback naming scheme")
	opts := &options{}
	app.Flag("prefix", "Key prefix, e.g. an organization name").StringVar(&opts.prefix)
	app.Flag("namespace", "Key namespace, e.g. a project name").StringVar(&opts.namespace)
	app.Flag("target", "Deployment target (defaults to APP_ENV or development)").StringVar(&opts.target)
	app.Flag("default", "Fallback value returned when no candidate key is set").StringVar(&opts.defVal)
	app.Flag("env-file", "Additional .env file consulted before the process environment (repeatable)").StringsVar(&opts.envFiles)
	app.Flag("yaml-file", "Additional flat YAML file consulted before the process environment (repeatable)").StringsVar(&opts.yamlFiles)
	app.Flag("verbose", "Log the candidate search path to stderr").Short('v').BoolVar(&opts.verbose)
	app.Arg("key", "Logical key to resolve, e.g. url").Required().StringVar(&opts.key)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := zap.NewNop()
	if opts.verbose {
		l, err := newLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "envscope: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = l.Sync()
		}()
		logger = l
	}

	value, err := run(opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envscope: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(value)
}

// run resolves the requested key against the process environment layered
// under any file sources given on the command line.
func run(opts *options, logger *zap.Logger) (string, error) {
	source, err := buildSource(opts.envFiles, opts.yamlFiles)
	if err != nil {
		return "", err
	}

	scope := envscope.FromEnv(
		envscope.WithSource(source),
		envscope.WithPrefix(opts.prefix),
		envscope.WithNamespace(opts.namespace),
	)
	if opts.target != "" {
		scope = scope.With(opts.target)
	}

	logger.Info("resolving key",
		zap.String("key", opts.key),
		zap.Strings("candidates", scope.Candidates(opts.key)),
		zap.String("source", source.Name()),
	)

	if opts.defVal != "" {
		return scope.Optional(opts.key, opts.defVal)
	}
	return scope.Required(opts.key)
}

// buildSource layers the file sources over the process environment. Files
// are consulted in the order given, earlier ones shadowing later ones.
func buildSource(envFiles, yamlFiles []string) (envscope.Source, error) {
	multi := envscope.NewMultiSource()
	for _, path := range envFiles {
		src, err := envscope.NewEnvFileSource(path)
		if err != nil {
			return nil, err
		}
		multi.Add(src)
	}
	for _, path := range yamlFiles {
		src, err := envscope.NewYAMLFileSource(path)
		if err != nil {
			return nil, err
		}
		multi.Add(src)
	}
	multi.Add(envscope.EnvSource{})
	return multi, nil
}

// newLogger creates a human-readable logger writing to stderr so the
// resolved value on stdout stays clean for shell substitution.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
