package main

import (
	"fmt"
	"os"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/bootstrap"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/conf"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/jwt"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/version"
	"github.com/spf13/cobra"
)

var confFile string

func main() {
	root := &cobra.Command{
		Use:   "hub",
		Short: "Page builder backend for GitHub-hosted static sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(confFile)
		},
	}
	root.PersistentFlags().StringVarP(&confFile, "conf", "c", "conf.d/config.toml", "configuration file path")
	root.AddCommand(version.VersionCmd)
	root.AddCommand(tokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// tokenCmd issues a session token for a user id, for operators and local
// testing against a running server.
func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <userId>",
		Short: "Issue a session token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appConf := conf.NewConf(confFile)

			expire := appConf.Http.Auth.AccessExpire
			if expire <= 0 {
				expire = 24 * time.Hour
			}
			token, err := jwt.GenToken(args[0], []byte(appConf.Http.Auth.SecretKey), expire)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
