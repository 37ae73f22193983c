package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the single ADMIN account",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().String("name", "", "admin display name")
	createAdminCmd.Flags().String("email", "", "admin email address")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")
}

// readPassword prompts with masking on a terminal and reads a plain line
// otherwise, so the command can be scripted.
func readPassword(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(name) == "" || email == "" {
		return errors.New("name and email are required")
	}

	password, err := readPassword("Admin password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if password == "" {
		return errors.New("password is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	admins, err := db.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if admins > 0 {
		return errors.New("an admin already exists")
	}
	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	admin := &models.User{
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.CreateUser(ctx, admin); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", admin.Email, admin.ID)
	return nil
}
