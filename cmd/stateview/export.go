package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/stateview-go/stateview/example"
	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/export"
	"github.com/stateview-go/stateview/pkg/provider"
)

func exportCmd() *cobra.Command {
	var (
		out      string
		s3Bucket string
		s3Prefix string
		s3Region string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot demo components to static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			var store export.Store
			if s3Bucket != "" {
				client := s3.New(s3.Options{Region: s3Region})
				store = export.NewS3Store(client, s3Bucket, s3Prefix)
				info("exporting to s3://%s/%s", s3Bucket, s3Prefix)
			} else {
				store = export.NewDirStore(out)
				info("exporting to %s", out)
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			exporter := export.NewExporter(store,
				export.WithLogger(logger),
				export.WithPretty(pretty),
			)

			snapshots := []struct {
				key       string
				component compose.Component
				props     provider.Props
			}{
				{"counter.html", example.CounterButton, provider.Props{"label": "Clicks"}},
				{"toggle.html", example.Switch, nil},
				{"items.html", compose.WithRender(example.Items, example.ItemsView), provider.Props{
					"initialState": provider.State{"items": []string{"alpha", "beta"}},
				}},
			}

			for _, snap := range snapshots {
				if err := exporter.Snapshot(cmd.Context(), snap.key, snap.component, snap.props); err != nil {
					return err
				}
				success("wrote %s", snap.key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "dist", "output directory")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "export to this S3 bucket instead of a directory")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "key prefix for S3 exports")
	cmd.Flags().StringVar(&s3Region, "s3-region", "us-east-1", "S3 region")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print exported HTML")

	return cmd
}
