package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add USERNAME",
	Short: "Create an account, prompting for the password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		env, _, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		u, err := env.Auth.Register(cmd.Context(), args[0], password)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		cmd.Printf("Created user %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	userAddCmd.Flags().Bool("password-stdin", false, "read the password from stdin instead of prompting")
	userCmd.AddCommand(userAddCmd)
}

// readPassword prompts twice on a terminal, or reads one line from stdin
// with --password-stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, use --password-stdin")
	}

	cmd.Print("Password: ")
	first, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	cmd.Print("Repeat password: ")
	second, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
