// Command inspect prints the messages of a channel store as a table and
// mints client tokens for the channel server.
package main

import (
	"chat-fs/auth"
	"chat-fs/domain"
	"chat-fs/repositories"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH"`
	JWTSecret         string        `env:"JWT_SECRET"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=720h"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if config.BadgerFilepath == "" {
		config.BadgerFilepath = database.DefaultPath
	}

	flags := pflag.NewFlagSet("inspect", pflag.ExitOnError)
	dbPath := flags.String("db", config.BadgerFilepath, "Path to badger DB")
	channel := flags.Uint64("channel", 0, "Channel to list")
	limit := flags.Int("limit", 0, "Maximum number of messages, 0 lists everything")
	token := flags.String("token", "", "Mint a token for this client id instead of listing")
	channels := flags.UintSlice("channels", nil, "Channels the minted token may access, empty allows all")
	_ = flags.Parse(os.Args[1:])

	if *token != "" {
		if config.JWTSecret == "" {
			log.Fatal("JWT_SECRET is required to mint a token")
		}
		signed, err := auth.GenerateToken([]byte(config.JWTSecret), *token,
			lo.Map(*channels, func(c uint, _ int) uint64 { return uint64(c) }), config.AuthTokenDuration)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(signed)
		return
	}

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	viewer := repositories.NewMessageViewer(db, logs.GetLoggerFromString("ERROR"))
	messages, err := listMessages(viewer, domain.ChannelID(*channel), *limit)
	if err != nil {
		log.Fatal(err)
	}
	render(os.Stdout, messages)
}

// listMessages pages through the channel, newest first.
func listMessages(repository repositories.IMessageRepository, channel domain.ChannelID, limit int) ([]repositories.DiskMessage, error) {
	const pageSize = 100
	var (
		all    []repositories.DiskMessage
		cursor *string
	)
	for {
		page, next, err := repository.GetMessages(channel, cursor, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if limit > 0 && len(all) >= limit {
			return all[:limit], nil
		}
		if len(page) < pageSize {
			return all, nil
		}
		cursor = next
	}
}

// role tells where a message sits in its chain. A message nobody in the
// listing points to is shown as a head.
func role(message repositories.DiskMessage, referenced map[uint64]bool) string {
	link, err := domain.ParseChainLink(message.Content)
	switch {
	case err != nil:
		return color.Red.Sprint("malformed")
	case !referenced[message.ID] && link.IsTail():
		return color.Green.Sprint("head+tail")
	case !referenced[message.ID]:
		return color.Green.Sprint("head")
	case link.IsTail():
		return color.Cyan.Sprint("tail")
	default:
		return "link"
	}
}

func render(w io.Writer, messages []repositories.DiskMessage) {
	referenced := make(map[uint64]bool)
	for _, message := range messages {
		if link, err := domain.ParseChainLink(message.Content); err == nil && link.Next != nil {
			referenced[uint64(*link.Next)] = true
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Role", "Filename", "Next", "Attachments", "Bytes", "At"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, message := range messages {
		filename, next, _ := strings.Cut(message.Content, "\n")
		if next == "" {
			next = "-"
		}
		var size int64
		for _, a := range message.Attachments {
			size += a.Size
		}
		table.Append([]string{
			strconv.FormatUint(message.ID, 10),
			role(message, referenced),
			filename,
			next,
			strconv.Itoa(len(message.Attachments)),
			strconv.FormatInt(size, 10),
			message.At.Format(time.DateTime),
		})
	}
	table.Render()
}
