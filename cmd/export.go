package cmd

import (
	"errors"
	"io"

	"github.com/articled/apiserver/config"
	"github.com/articled/apiserver/internal/db"
	"github.com/articled/apiserver/internal/services"
	"github.com/articled/apiserver/internal/storage"
	"github.com/articled/apiserver/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportUserID int64
	exportPrint  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's articles to object storage",
	Long: `Writes every article owned by --user-id as one JSON document to the
configured object store and prints the object key. Usage:

	articled export --user-id 42 [--print]
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportUserID < 1 {
			return errors.New("--user-id must be a positive id")
		}

		cfg := config.LoadConfig()
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		objects, err := storage.Open(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		defer objects.Close()

		var articles services.ArticleLifecycle = services.NewArticleService(store.NewArticleRepository(dbConn))
		articles = services.NewArticleLogger(logger, articles)

		result, err := services.NewExportService(articles, objects).Export(ctx, exportUserID)
		if err != nil {
			return err
		}
		logger.Info("export written",
			zap.Int64("user_id", exportUserID),
			zap.String("bucket", objects.Bucket()),
			zap.String("key", result.Key),
			zap.Int("count", result.Count),
		)
		cmd.Println(result.Key)

		if !exportPrint {
			return nil
		}
		r, err := objects.Get(ctx, result.Key)
		if err != nil {
			return err
		}
		defer r.Close()
		_, err = io.Copy(cmd.OutOrStdout(), r)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Int64Var(&exportUserID, "user-id", 0, "owner whose articles are exported")
	exportCmd.Flags().BoolVar(&exportPrint, "print", false, "read the stored export back and print it")
	_ = exportCmd.MarkFlagRequired("user-id")
}
