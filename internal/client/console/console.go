package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/account-messenger/internal/client/api"
	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// API — операции сервера, нужные клиенту.
type API interface {
	Login(ctx context.Context, username, password string) (models.UserView, error)
	CreateUser(ctx context.Context, username, password string, expiryDays int) (string, error)
	Broadcast(ctx context.Context, text string) (string, error)
	Reply(ctx context.Context, username, text string) (string, error)
	GetUser(ctx context.Context, username string) (models.UserView, error)
	ListUsers(ctx context.Context) (models.Users, error)
	Send(ctx context.Context, target, messageType string) (string, error)
}

var errExit = errors.New("exit")

// Console — интерактивный клиент.
type Console struct {
	api   API
	in    *bufio.Reader
	out   io.Writer
	state State
	now   func() time.Time
	admin string
}

// New создаёт клиент. adminUsername нужен, чтобы отличать сообщения администратора в ленте.
func New(client API, in io.Reader, out io.Writer, adminUsername string) *Console {
	return &Console{
		api:   client,
		in:    bufio.NewReader(in),
		out:   out,
		state: Initial(),
		now:   time.Now,
		admin: adminUsername,
	}
}

// State возвращает текущее состояние клиента.
func (c *Console) State() State {
	return c.state
}

// Run читает команды до exit или конца ввода.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Type 'help' to see available commands.\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("%s> ", c.state.Screen)
		line, err := c.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				c.printf("\n")
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := c.exec(ctx, fields[0]); err != nil {
			if errors.Is(err, errExit) {
				c.printf("Bye!\n")
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (c *Console) exec(ctx context.Context, cmd string) error {
	if cmd == "exit" || cmd == "quit" {
		return errExit
	}
	if cmd == "help" {
		c.help()
		return nil
	}

	switch c.state.Screen {
	case ScreenLogin:
		if cmd == "login" {
			return c.login(ctx)
		}
	case ScreenMenu:
		switch cmd {
		case "messages":
			c.renderMessages()
			return nil
		case "reply":
			return c.reply(ctx)
		case "refresh":
			return c.refresh(ctx)
		case "send":
			return c.send(ctx)
		case "logout":
			c.logout()
			return nil
		}
	case ScreenAdmin:
		switch cmd {
		case "users":
			return c.renderUsers(ctx)
		case "create":
			return c.createUser(ctx)
		case "broadcast":
			return c.broadcast(ctx)
		case "send":
			return c.send(ctx)
		case "logout":
			c.logout()
			return nil
		}
	}

	c.printf("Unknown command: %s\n", cmd)
	return nil
}

func (c *Console) help() {
	switch c.state.Screen {
	case ScreenLogin:
		c.printf("Available commands: login, help, exit\n")
	case ScreenMenu:
		c.printf("Available commands: messages, reply, refresh, send, logout, help, exit\n")
	case ScreenAdmin:
		c.printf("Available commands: users, create, broadcast, send, logout, help, exit\n")
	}
}

func (c *Console) login(ctx context.Context) error {
	username, err := prompt(c.in, c.out, "Username")
	if err != nil {
		return err
	}
	password, err := promptPassword(c.in, c.out)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		c.printf("Username and password are required.\n")
		return nil
	}

	user, err := c.api.Login(ctx, username, password)
	if err != nil {
		c.reportError(err)
		return nil
	}

	c.state = c.state.LoggedIn(user)
	if user.IsAdmin {
		c.printf("Admin panel.\n")
		return c.renderUsers(ctx)
	}

	c.printf("Hello, %s!\n", user.Username)
	if days, ok := DaysRemaining(user.Expiry, c.now()); ok {
		c.printf("Your account expires in %d days.\n", days)
	}
	c.renderMessages()
	return nil
}

func (c *Console) logout() {
	c.state = c.state.LoggedOut()
	c.printf("Logged out.\n")
}

func (c *Console) renderMessages() {
	msgs := c.state.Session.User.Messages
	if len(msgs) == 0 {
		c.printf("No messages.\n")
		return
	}
	for _, m := range msgs {
		who := "You"
		if m.Sender == c.admin {
			who = "Admin"
		}
		c.printf("[%s] %s: %s\n", m.Timestamp.Local().Format("2006-01-02 15:04"), who, m.Text)
	}
}

func (c *Console) reply(ctx context.Context) error {
	text, err := prompt(c.in, c.out, "Reply")
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	if _, err := c.api.Reply(ctx, c.state.Session.User.Username, text); err != nil {
		c.reportError(err)
		return nil
	}
	return c.refresh(ctx)
}

func (c *Console) refresh(ctx context.Context) error {
	user, err := c.api.GetUser(ctx, c.state.Session.User.Username)
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.state = c.state.Refreshed(user)
	c.renderMessages()
	return nil
}

func (c *Console) send(ctx context.Context) error {
	target, err := prompt(c.in, c.out, "Target")
	if err != nil {
		return err
	}
	messageType, err := prompt(c.in, c.out, "Message type")
	if err != nil {
		return err
	}
	if target == "" {
		c.printf("Target must not be empty!\n")
		return nil
	}

	msg, err := c.api.Send(ctx, target, messageType)
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.printf("%s\n", msg)
	return nil
}

func (c *Console) renderUsers(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.reportError(err)
		return nil
	}

	names := make([]string, 0, len(users))
	for name, u := range users {
		if !u.IsAdmin {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		c.printf("No users.\n")
		return nil
	}
	now := c.now()
	for _, name := range names {
		u := users[name]
		exp := "never"
		if u.Expiry != nil {
			exp = u.Expiry.Local().Format("2006-01-02")
		}
		c.printf("%s - Exp: %s (%s)\n", name, exp, UserStatus(u, now))
	}
	return nil
}

func (c *Console) createUser(ctx context.Context) error {
	username, err := prompt(c.in, c.out, "New username")
	if err != nil {
		return err
	}
	password, err := prompt(c.in, c.out, "New password")
	if err != nil {
		return err
	}
	daysRaw, err := prompt(c.in, c.out, "Expiry days")
	if err != nil {
		return err
	}

	days, convErr := strconv.Atoi(daysRaw)
	if username == "" || password == "" || convErr != nil {
		c.printf("All fields must be filled in correctly!\n")
		return nil
	}

	msg, err := c.api.CreateUser(ctx, username, password, days)
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.printf("%s\n", msg)
	return c.renderUsers(ctx)
}

func (c *Console) broadcast(ctx context.Context) error {
	text, err := prompt(c.in, c.out, "Message")
	if err != nil {
		return err
	}
	if text == "" {
		c.printf("Message must not be empty!\n")
		return nil
	}

	msg, err := c.api.Broadcast(ctx, text)
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.printf("%s\n", msg)
	return nil
}

func (c *Console) reportError(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		c.printf("%s\n", apiErr.Message)
		return
	}
	c.printf("Request failed: %v\n", err)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
