package steamcmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// PromptCredentials interactively collects the Steam login used for the
// download batch. The password is read without echo. Username and password
// are required; the Steam Guard code may be left blank.
func PromptCredentials() (Credentials, error) {
	logger.Info("[INFO] Account should have a valid copy of the game to download mods.\n")
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, errors.New("no username entered")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return Credentials{}, errors.New("no password entered")
	}

	fmt.Print("Steam Guard Code (Optional): ")
	guard, err := reader.ReadString('\n')
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read Steam Guard code: %w", err)
	}

	return Credentials{
		Username:  username,
		Password:  string(password),
		GuardCode: strings.TrimSpace(guard),
	}, nil
}
