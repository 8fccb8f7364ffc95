package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klabast/wb-services/holiday-converter/internal/app"
	"golang.org/x/term"
)

// HashPassword handles the hash-password subcommand
func HashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: holiday-converter hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates an auth file with an Argon2id password hash.\n")
		fmt.Fprintf(os.Stderr, "When it exists, the converter API requires Basic Auth.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %s    Path to auth file (default: auth.secret next to the binary)\n", app.AuthFileEnv)
	}
	fs.Parse(args)

	if err := runHashPassword(os.Stdin, *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runHashPassword(in *os.File, overwrite bool) error {
	authFile, err := app.AuthFilePath()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(in)

	fmt.Print("Enter username: ")
	username, err := readLine(reader)
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}

	password, err := readPassword(in, reader, "Enter password:   ")
	if err != nil {
		return err
	}
	confirm, err := readPassword(in, reader, "Confirm password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	err = app.CreateAuthFile(authFile, username, password, overwrite)
	if errors.Is(err, app.ErrAuthFileExists) {
		fmt.Printf("Auth file already exists: %s\n", authFile)
		fmt.Print("Overwrite? (y/N): ")
		answer, _ := readLine(reader)
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			return errors.New("aborted")
		}
		err = app.CreateAuthFile(authFile, username, password, true)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✅ Auth file created: %s (mode: 0400 read-only)\n", authFile)
	fmt.Printf("   Username: %s\n", username)
	return nil
}

// readPassword reads without echo on a terminal and falls back to a
// plain line read when input is piped
func readPassword(in *os.File, reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	if !term.IsTerminal(int(in.Fd())) {
		return readLine(reader)
	}
	password, err := term.ReadPassword(int(in.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
