package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/forgo/runningmate/internal/app"
	"github.com/forgo/runningmate/internal/config"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/screen"
	"github.com/forgo/runningmate/internal/session"
	"github.com/forgo/runningmate/internal/store"
)

const usage = `Usage: runningmate [flags] <command> [args]

Commands:
  notices             list notices (filter with -dou, -si, -gu)
  notice <id>         show one notice
  crews               list crews
  crew <id>           show one crew
  join <id>           ask to join a crew
  friends             list friends
  requests            list pending friend requests
  permit <nickName>   accept a friend request
  dismiss <nickName>  reject a friend request

Flags:
`

var errUsage = errors.New("bad usage")

type options struct {
	email    string
	password string
	token    string
	nick     string
	address  model.Address
	offset   int
	limit    int
}

func main() {
	var opts options
	flag.StringVar(&opts.email, "email", os.Getenv("RUNNINGMATE_EMAIL"), "Sign in with this email")
	flag.StringVar(&opts.password, "password", os.Getenv("RUNNINGMATE_PASSWORD"), "Password for -email")
	flag.StringVar(&opts.token, "token", os.Getenv("RUNNINGMATE_TOKEN"), "Use this token instead of signing in")
	flag.StringVar(&opts.nick, "nick", "", "Nickname carried by -token")
	flag.StringVar(&opts.address.Dou, "dou", "", "Region filter for notices")
	flag.StringVar(&opts.address.Si, "si", "", "City or district filter for notices")
	flag.StringVar(&opts.address.Gu, "gu", "", "Sub-district filter for notices")
	flag.IntVar(&opts.offset, "offset", 0, "Listing offset; notices advance a page at a time")
	flag.IntVar(&opts.limit, "limit", 20, "Crew listing size")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := app.New(cfg.Client, app.WithLogger(logger), app.WithNotifier(notify.NewWriterNotifier(os.Stderr)))
	err = run(ctx, c, opts, flag.Args())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = c.Shutdown(shutdownCtx)

	switch {
	case errors.Is(err, errUsage):
		flag.Usage()
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *app.Container, opts options, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	// public listings need no session
	switch cmd {
	case "notices":
		return listNotices(ctx, c, opts)
	case "crews":
		return listCrews(ctx, c, opts)
	case "crew":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		return showCrew(ctx, c, id)
	}

	if err := authenticate(ctx, c, opts); err != nil {
		return err
	}

	switch cmd {
	case "notice":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		return showNotice(ctx, c, id)
	case "join":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		return joinCrew(ctx, c, id)
	case "friends":
		return listFriends(ctx, c)
	case "requests":
		return listRequests(ctx, c)
	case "permit", "dismiss":
		if len(rest) != 1 {
			return errUsage
		}
		return answerRequest(ctx, c, cmd, rest[0])
	default:
		return errUsage
	}
}

func authenticate(ctx context.Context, c *app.Container, opts options) error {
	if opts.token != "" {
		c.Session.Restore(session.Token(opts.token), opts.nick)
		return nil
	}
	if opts.email == "" {
		return errors.New("sign in with -email and -password, or pass -token")
	}

	p := c.SignIn()
	p.Mount(ctx)
	defer p.Unmount()
	if err := step(p.Submit(ctx, opts.email, opts.password), c.Session.Slice(), "sign in"); err != nil {
		return err
	}
	slog.Debug("signed in", slog.String("nick_name", c.Session.NickName()))
	return nil
}

func listNotices(ctx context.Context, c *app.Container, opts options) error {
	p := c.NoticeBoard()
	defer p.Unmount()
	if err := step(p.Mount(ctx), c.NoticeSlice, "list notices"); err != nil {
		return err
	}
	if !opts.address.IsZero() {
		if err := step(p.SetFilter(ctx, opts.address), c.NoticeSlice, "list notices"); err != nil {
			return err
		}
	}
	for p.Offset()+screen.DefaultNoticePageSize <= opts.offset {
		if err := step(p.Next(ctx), c.NoticeSlice, "list notices"); err != nil {
			return err
		}
	}
	for _, n := range p.Notices() {
		printNotice(n)
	}
	return nil
}

func showNotice(ctx context.Context, c *app.Container, id int64) error {
	p := c.NoticeDetail()
	defer p.Unmount()
	if err := step(p.Mount(ctx, id), c.NoticeSlice, "get notice"); err != nil {
		return err
	}
	n := p.Notice()
	printNotice(n)
	if n.Content != "" {
		fmt.Println(n.Content)
	}
	return nil
}

func listCrews(ctx context.Context, c *app.Container, opts options) error {
	p := c.CrewList()
	defer p.Unmount()
	if err := step(p.Mount(ctx, opts.limit), c.CrewSlice, "list crews"); err != nil {
		return err
	}
	if opts.offset > 0 {
		if err := step(p.Load(ctx, opts.offset, opts.limit), c.CrewSlice, "list crews"); err != nil {
			return err
		}
	}
	for _, crew := range p.Crews() {
		fmt.Printf("%d\t%s\t%s\t%d members\n", crew.ID, crew.CrewName, crew.CrewRegion, crew.MemberCount)
	}
	return nil
}

func showCrew(ctx context.Context, c *app.Container, id int64) error {
	p := c.CrewDetail()
	defer p.Unmount()
	if err := step(p.Mount(ctx, id), c.CrewSlice, "get crew"); err != nil {
		return err
	}
	crew := p.Crew()
	fmt.Printf("%s (%s)\n%s\n", crew.CrewName, crew.CrewRegion, crew.Explanation)
	for _, u := range crew.UserDtos {
		fmt.Printf("  member   %s\n", u.NickName)
	}
	for _, u := range crew.RequestUsers {
		fmt.Printf("  waiting  %s\n", u.NickName)
	}
	return nil
}

func joinCrew(ctx context.Context, c *app.Container, id int64) error {
	p := c.CrewDetail()
	defer p.Unmount()
	if err := step(p.Mount(ctx, id), c.CrewSlice, "get crew"); err != nil {
		return err
	}
	return step(p.Join(ctx), c.CrewSlice, "join crew")
}

func listFriends(ctx context.Context, c *app.Container) error {
	p := c.FriendList()
	defer p.Unmount()
	if err := step(p.Mount(ctx), c.FriendSlice, "list friends"); err != nil {
		return err
	}
	for _, nick := range p.Friends() {
		fmt.Println(nick)
	}
	return nil
}

func listRequests(ctx context.Context, c *app.Container) error {
	p := c.FriendRequests()
	p.Mount(ctx)
	p.Unmount()
	for _, nick := range p.Requests() {
		fmt.Println(nick)
	}
	return nil
}

func answerRequest(ctx context.Context, c *app.Container, cmd, nick string) error {
	p := c.FriendRequests()
	p.Mount(ctx)
	defer p.Unmount()
	p.Wait()

	answer := p.Permit
	if cmd == "dismiss" {
		answer = p.Dismiss
	}
	return step(answer(ctx, nick), c.FriendSlice, cmd+" "+nick)
}

func printNotice(n model.NoticeSummary) {
	state := "open"
	if n.Closed {
		state = "closed"
	}
	fmt.Printf("%d\t%s\t%s %s %s\t%s\t%s\n", n.ID, n.Title, n.Address.Dou, n.Address.Si, n.Address.Gu, n.MeetingTime, state)
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// settle waits for h and then for the screen binding to acknowledge it, so
// that its toast is printed before the command exits
func settle[T any](h *dispatch.Handle, s *store.Slice[T]) {
	h.Wait()
	deadline := time.Now().Add(time.Second)
	for s.Status().IsTerminal() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
}

// step settles h and reports how it ended
func step[T any](h *dispatch.Handle, s *store.Slice[T], op string) error {
	settle(h, s)
	return outcome(h, op)
}

func outcome(h *dispatch.Handle, op string) error {
	switch h.Wait() {
	case dispatch.Succeeded:
		return nil
	case dispatch.Cancelled:
		return fmt.Errorf("%s: cancelled", op)
	default:
		if err := h.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Errorf("%s failed", op)
	}
}
