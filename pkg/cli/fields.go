package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/model"
)

func cmdFields() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "Show which OneSky field is written to which file",
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}

			for _, key := range model.FieldKeys() {
				filename, _ := model.MapFilename(string(key))
				if _, err := fmt.Fprintf(w, "%-24s %s\n", key, filename); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
