// Command-line chat client for a running chatgate server
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/config"
	"chatgate/chatgate/types"
	"chatgate/chatgate/utils/color"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/widget"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	args := os.Args[1:]
	if len(args) < 1 || args[0] != "chat" {
		fmt.Println("chatgate CLI usage:")
		fmt.Println("  chatgate chat [--token TOKEN] [--endpoint URL] [--no-color]")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	token := fs.String("token", os.Getenv("CHATGATE_TOKEN"), "access token sent as the bearer credential")
	endpoint := fs.String("endpoint", "", "chat function URL (defaults to CHAT_API_ENDPOINT)")
	noColor := fs.Bool("no-color", false, "disable coloured output")
	fs.Parse(args[1:])
	if *noColor {
		color.DisableColor()
	}

	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Println(color.ColorError("config error: " + err.Error()))
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Println(color.ColorError("logger error: " + err.Error()))
		os.Exit(1)
	}
	defer logging.Sync()

	if *endpoint == "" {
		*endpoint = cfg.ChatAPIEndpoint
	}
	if *token == "" {
		fmt.Println(color.ColorError("no access token: pass --token or set CHATGATE_TOKEN"))
		os.Exit(1)
	}

	sess := &types.Session{
		ID:              fmt.Sprintf("cli-%s", uuid.New().String()[:8]),
		IsAuthenticated: true,
		AccessToken:     *token,
		CreatedAt:       time.Now(),
	}
	if cfg.AuthDomain != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		user, err := auth.NewProvider(cfg).GetUser(ctx, *token)
		cancel()
		if err != nil {
			fmt.Println(color.ColorError("could not resolve user: " + err.Error()))
			os.Exit(1)
		}
		sess.User = user
		fmt.Println(color.ColorInfo("Signed in as ") + color.ColorUser(user.Email))
	}

	st := widget.NewState(sess)
	w := widget.New(widget.NewClient(*endpoint, cfg.RelayTimeout))
	logging.AppLogger.Info("chatgate CLI started",
		zap.String("session", sess.ID),
		zap.String("endpoint", *endpoint),
	)

	st.Welcome(time.Now())
	printed := printNew(st, 0)
	fmt.Println(color.ColorInfo("Type a message, or 'exit' to quit."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("you> "))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "exit", "quit":
			fmt.Println(color.ColorInfo("Goodbye!"))
			return
		}
		if err := w.Send(context.Background(), st, line); err != nil {
			fmt.Println(color.ColorError(err.Error()))
			continue
		}
		printed = printNew(st, printed)
	}
}

// printNew prints messages appended since the first `from` and returns the new count.
func printNew(st *widget.State, from int) int {
	msgs := st.Messages()
	for _, m := range msgs[from:] {
		if m.Sender == types.SenderBot {
			fmt.Println(color.ColorBot("bot: ") + m.Content)
		}
	}
	return len(msgs)
}
