package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"time"

	"account/config"
	"account/internal/domain/entity"
	"account/internal/domain/service"
	logs "account/internal/infra/log"
	"account/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type commandIO struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)

		return errors.New("missing subcommand")
	}

	cio := commandIO{stdin: stdin, stdout: stdout, stderr: stderr}

	switch args[0] {
	case "register":
		return handleRegister(ctx, args[1:], cio)
	case "hash":
		return handleHash(args[1:], cio)
	case "help", "-h", "--help":
		printUsage(stdout)

		return nil
	default:
		printUsage(stderr)

		return errors.Errorf("unknown subcommand %q", args[0])
	}
}

type userView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Salt           string    `json:"salt"`
	HashedPassword string    `json:"hashedPassword"`
	PasswordScheme string    `json:"passwordScheme"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type registerResult struct {
	User        userView `json:"user"`
	AccessToken string   `json:"accessToken"`
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Salt:           user.Salt,
		HashedPassword: user.HashedPassword,
		PasswordScheme: user.PasswordScheme.String(),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func handleRegister(ctx context.Context, args []string, cio commandIO) error {
	cmd := flag.NewFlagSet("register", flag.ContinueOnError)
	cmd.SetOutput(cio.stderr)
	name := cmd.String("name", "", "Display name of the account")
	email := cmd.String("email", "", "Email address of the account")

	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse register flags")
	}

	password, err := readPassword(cio.stdin, cio.stderr)
	if err != nil {
		return err
	}

	return runApp(cio.stderr, func(users usecase.UserUsecase, logger *slog.Logger) error {
		reqCtx := logs.WithCorrelationID(ctx, logger, uuid.NewString())

		out, err := users.Register(reqCtx, &usecase.RegisterUserInput{
			Name:     *name,
			Email:    *email,
			Password: password,
		})
		if err != nil {
			return err
		}

		token, err := users.IssueToken(reqCtx, out.User.ID)
		if err != nil {
			return err
		}

		return writeJSON(cio.stdout, registerResult{
			User:        toUserView(out.User),
			AccessToken: token,
		})
	})
}

func handleHash(args []string, cio commandIO) error {
	cmd := flag.NewFlagSet("hash", flag.ContinueOnError)
	cmd.SetOutput(cio.stderr)
	salt := cmd.String("salt", "", "Salt to key the digest with")
	scheme := cmd.String("scheme", "", "Password scheme (hmac-sha1, hmac-sha256, argon2id); defaults to auth.passwordScheme")

	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse hash flags")
	}
	if *salt == "" {
		return errors.New("--salt flag is required for hash command")
	}

	password, err := readPassword(cio.stdin, cio.stderr)
	if err != nil {
		return err
	}

	return runApp(cio.stderr, func(credentials service.CredentialManager, cfg *config.Config) error {
		selected := *scheme
		if selected == "" {
			selected = cfg.Auth.PasswordScheme
		}

		digest := credentials.Hash(&entity.User{
			Salt:           *salt,
			PasswordScheme: entity.PasswordScheme(selected),
		}, password)
		if digest == "" {
			return errors.Errorf("no digest produced for scheme %q", selected)
		}

		return writeJSON(cio.stdout, map[string]string{
			"scheme": selected,
			"salt":   *salt,
			"hash":   digest,
		})
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(v), "failed to write output")
}
