package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/resourcehub/resourcehub/app/core"
	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/app/logic/v1/process"
	"github.com/resourcehub/resourcehub/pkg/catalog"
	"github.com/resourcehub/resourcehub/pkg/readme"
	"github.com/resourcehub/resourcehub/pkg/types"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "config file path, read RESOURCEHUB_* env when empty")
}

func setupCore(opts *Options) (*core.Core, error) {
	cfg, err := core.LoadBaseConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return core.SetupCore(cfg)
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "run the http service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app, err := setupCore(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	return serve(app)
}

func NewProcessCommand() *cobra.Command {
	opts := &Options{}
	var once bool
	cmd := &cobra.Command{
		Use:   "process",
		Short: "run the scheduled star sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunProcess(opts, once)
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().BoolVar(&once, "once", false, "sync once and exit")
	return cmd
}

func RunProcess(opts *Options, once bool) error {
	app, err := setupCore(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if once {
		res, ran := process.SyncStars(context.Background(), app)
		if ran && res != nil {
			fmt.Printf("synced %d repos, %d failed\n", res.Success, res.Failed)
		}
		return nil
	}

	p := process.NewProcess(app)
	p.Start()
	defer p.Stop()
	fmt.Println("Process starting...")

	sigs := make(chan os.Signal, 1)
	// 监听 os.Interrupt (Ctrl+C) 和 syscall.SIGTERM (kill)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	// 阻塞等待信号
	<-sigs
	return nil
}

func NewStarsCommand() *cobra.Command {
	opts := &Options{}
	var output string
	cmd := &cobra.Command{
		Use:   "stars owner/name",
		Short: "fetch star data of one repository into a json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStars(opts, args[0], output)
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, defaults to catalog.star_data_path")
	return cmd
}

// RunStars merges the fetched repository into the star data document.
func RunStars(opts *Options, repo, output string) error {
	app, err := setupCore(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if output == "" {
		output = app.Cfg().Catalog.StarDataPath
	}

	data, err := v1.NewStarLogic(context.Background(), app).Fetch(repo)
	if err != nil {
		return fmt.Errorf("fetch star data of %s: %w", repo, err)
	}

	doc, err := catalog.LoadStarData(output)
	if err != nil {
		slog.Warn("star data document not readable, starting a new one", slog.String("path", output), slog.String("error", err.Error()))
		doc = &types.StarDataDocument{Projects: []types.RepositoryStarData{}}
	}
	if exist := doc.Find(data.RepoName); exist != nil {
		*exist = *data
	} else {
		doc.Projects = append(doc.Projects, *data)
	}
	if err = catalog.SaveStarData(output, doc); err != nil {
		return err
	}
	fmt.Printf("%s: %d stars, %d history points written to %s\n", data.RepoName, data.StarCount, len(data.StarHistory), output)
	return nil
}

func NewReadmeCommand() *cobra.Command {
	opts := &Options{}
	var (
		output     string
		preview    bool
		groupByTag bool
	)
	cmd := &cobra.Command{
		Use:   "readme",
		Short: "generate README.md from the resource document",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setupCore(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			md, err := v1.NewReadmeLogic(context.Background(), app).Generate(groupByTag)
			if err != nil {
				return err
			}

			if preview {
				out, err := readme.Render(md, 100)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			if err = os.WriteFile(output, []byte(md), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "README written to %s\n", output)
			return nil
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "README.md", "output file")
	cmd.Flags().BoolVar(&preview, "preview", false, "render to the terminal instead of writing a file")
	cmd.Flags().BoolVar(&groupByTag, "group-by-tag", false, "group resources under their tag")
	return cmd
}

func NewPublishCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "upload the catalog, star data and README to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setupCore(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			files, err := v1.NewPublishLogic(context.Background(), app).Publish()
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", f.Key, f.URL)
			}
			return nil
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}
