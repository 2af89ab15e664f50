// gympro-cli — консольный клиент gympro-backend поверх pkg/session:
// логин, прозрачное обновление токенов и повтор запроса делает SDK,
// команды лишь дергают REST-эндпойнты.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelvin100238453/gympro-backend/pkg/session"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: gympro-cli [-addr URL] <command> [args]

commands:
  login-client   -name NAME -password PASS
  login-trainer  -email EMAIL -password PASS
  register       -name NAME -email EMAIL -password PASS
  clients                    list own clients (trainer)
  log-workout    -client ID -seconds N
  exercises                  list exercise library
  logout
`)
	os.Exit(2)
}

func main() {
	addr := flag.String("addr", envOr("GYMPRO_ADDR", "http://localhost:3001/api"), "server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	store := session.NewFileStore(session.DefaultStorePath())
	cl := session.New(*addr, store, session.WithRefreshTimeout(10*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := run(ctx, cl, cmd, args); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(os.Stderr, "not logged in (run login-client or login-trainer)")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cl *session.Client, cmd string, args []string) error {
	switch cmd {
	case "login-client":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "client name")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		user, err := cl.LoginClient(ctx, *name, *password)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
		return nil

	case "login-trainer":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "trainer email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		user, err := cl.LoginTrainer(ctx, *email, *password)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
		return nil

	case "register":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "trainer name")
		email := fs.String("email", "", "trainer email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		user, err := cl.RegisterTrainer(ctx, *name, *email, *password)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (%s)\n", user.Name, user.ID)
		return nil

	case "clients":
		var out []map[string]any
		if err := cl.DoJSON(ctx, http.MethodGet, "/clients", nil, &out); err != nil {
			return err
		}
		return printJSON(out)

	case "log-workout":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		clientID := fs.String("client", "", "client id")
		seconds := fs.Int("seconds", 0, "workout duration in seconds")
		_ = fs.Parse(args)

		body, _ := json.Marshal(map[string]int{"durationSeconds": *seconds})
		var out map[string]any
		if err := cl.DoJSON(ctx, http.MethodPost, "/clients/"+*clientID+"/log-workout", body, &out); err != nil {
			return err
		}
		return printJSON(out)

	case "exercises":
		var out []map[string]any
		if err := cl.DoJSON(ctx, http.MethodGet, "/exercises", nil, &out); err != nil {
			return err
		}
		return printJSON(out)

	case "logout":
		if err := cl.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	default:
		usage()
		return nil
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
