package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	userDomain "github.com/allisson/appsecrets/internal/user/domain"
	userUsecase "github.com/allisson/appsecrets/internal/user/usecase"
)

// RunCreateUser registers a new admin user. When plainPassword is empty the
// password is read interactively from io.Reader, so it never has to appear in
// shell history.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUC userUsecase.UseCase,
	logger *slog.Logger,
	io IOTuple,
	name string,
	email string,
	plainPassword string,
) error {
	if plainPassword == "" {
		var err error
		plainPassword, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	user, err := userUC.RegisterUser(ctx, userDomain.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: plainPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "User %s created (id=%s)\n", user.Email, user.ID)

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// promptForPassword reads a password from the reader, trimming the trailing newline.
func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	reader := bufio.NewReader(io.Reader)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
