package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"go.uber.org/zap"

	views "github.com/goliatone/go-views"
	"github.com/goliatone/go-views/pkg/resolve"
)

func main() {
	dirs := flag.String("dir", "templates", "comma separated template directories, searched in order")
	name := flag.String("template", "", "comma separated candidate template names, most specific first")
	dataJSON := flag.String("data", "", "JSON object passed to the template as context")
	configPath := flag.String("config", "", "optional views.yaml configuration file")
	explainFlag := flag.Bool("explain", false, "log every loader consulted during resolution")
	interactive := flag.Bool("interactive", false, "pick the template from the discovered names")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	var fns []views.OptionFn
	if *configPath != "" {
		loaded, err := views.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		fns = append(fns, loaded...)
	}
	dirList := splitList(*dirs)
	if len(dirList) == 0 {
		log.Fatalf("No template directory: pass -dir")
	}
	fns = append(fns, views.WithTemplateDir(dirList[0]))
	if *explainFlag {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
		fns = append(fns, views.WithLogger(logger), views.WithExplainTemplateLoading(true))
	}

	env, err := views.New(fns...)
	if err != nil {
		log.Fatalf("Failed to build environment: %v", err)
	}
	for i, dir := range dirList {
		if i == 0 {
			continue
		}
		src, err := resolve.NewDirSource(fmt.Sprintf("extra-%d", i), resolve.KindApplication, dir, dir)
		if err != nil {
			log.Fatalf("Invalid directory %q: %v", dir, err)
		}
		if err := env.RegisterSource(src); err != nil {
			log.Fatalf("Failed to register %q: %v", dir, err)
		}
	}

	candidates := splitList(*name)
	if *interactive {
		picked, err := pickTemplate(env)
		if err != nil {
			log.Fatalf("Failed to pick template: %v", err)
		}
		candidates = []string{picked}
	}
	if len(candidates) == 0 {
		log.Fatalf("No template selected: pass -template or -interactive")
	}

	var data map[string]any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &data); err != nil {
			log.Fatalf("Invalid -data JSON: %v", err)
		}
	}

	rendered, err := env.RenderTemplate(context.Background(), data, candidates...)
	if err != nil {
		log.Fatalf("Failed to render template: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Rendered template written to %s\n", *output)
	} else {
		fmt.Println(rendered)
	}
}

func pickTemplate(env *views.Environment) (string, error) {
	var names []string
	seen := make(map[string]struct{})
	for _, src := range env.Registry().Sources() {
		lister, ok := src.(resolve.Lister)
		if !ok {
			continue
		}
		for _, name := range lister.Names() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no templates discovered")
	}

	var picked string
	prompt := &survey.Select{
		Message: "Template to render:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return "", err
	}
	return picked, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
