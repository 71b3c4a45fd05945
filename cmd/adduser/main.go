// Command adduser registers a user directly against the credential store.
//
//	adduser -user alice            # prompts for the password without echo
//	echo s3cret | adduser -user bob
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"auth_backend/internal/app/di"
	authusecase "auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/db"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

type cliConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// registerer is the slice of the auth use case this command needs.
type registerer interface {
	Register(ctx context.Context, username, password string) (uint, error)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "adduser:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin *os.File, stdout io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	username := fs.String("user", "", "username to register")
	envFile := fs.String("env", ".env", "optional dotenv file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("-user is required")
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}
	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	dbCfg, err := db.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	password, err := readPasswordFrom(stdin, stdout)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	gdb, err := db.Open(dbCfg)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Registration never issues tokens.
	uc := authusecase.NewAuthUsecase(di.NewUserRepository(gdb, nil, 0), nil, cfg.BcryptCost)
	return addUser(ctx, uc, *username, password, stdout)
}

// addUser registers username and reports the new ID on out.
func addUser(ctx context.Context, reg registerer, username string, password []byte, out io.Writer) error {
	id, err := reg.Register(ctx, username, string(password))
	if err != nil {
		return err
	}
	slog.Info("user registered", "user_id", id, "username", username)
	_, err = fmt.Fprintf(out, "registered %q with id %d\n", username, id)
	return err
}

// readPasswordFrom prompts without echo on a terminal and reads one line otherwise.
func readPasswordFrom(in *os.File, out io.Writer) ([]byte, error) {
	fd := int(in.Fd())
	if isTerminal(fd) {
		if _, err := fmt.Fprint(out, "Password: "); err != nil {
			return nil, err
		}
		pw, err := readPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return nil, err
		}
		return pw, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
