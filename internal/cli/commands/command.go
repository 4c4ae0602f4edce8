package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"ListKeeper/internal/config"
)

// ErrUsage возвращается командой при неверных аргументах: диспетчер покажет её Usage.
var ErrUsage = errors.New("usage")

// Command — подкоманда lkcli.
type Command interface {
	// Name — имя команды, как его набирает пользователь, например "add".
	Name() string
	Description() string
	// Usage — строка вида "add <date> <text> [flags]".
	Usage() string
	// Run получает аргументы без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out — общий writer для вывода CLI. В тестах переназначается.
var Out io.Writer = os.Stdout

// In — ввод для подтверждений, пароля и интерактивного поиска.
var In io.Reader = os.Stdin

// Разделы справки. Команды без раздела попадают в "Other".
const (
	groupAccount = "Account"
	groupLists   = "Lists"
	groupOther   = "Other"
)

var groupOrder = []string{groupAccount, groupLists, groupOther}

var commandGroups = map[string]string{
	"register": groupAccount,
	"login":    groupAccount,
	"logout":   groupAccount,
	"status":   groupAccount,
	"lists":    groupLists,
	"add":      groupLists,
	"get":      groupLists,
	"edit":     groupLists,
	"remove":   groupLists,
	"search":   groupLists,
}

// RegisterCmd добавляет команду в реестр; вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[strings.ToLower(cmd.Name())] = cmd
}

// Get ищет команду без учёта регистра.
func Get(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// List все команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

func groupOf(c Command) string {
	if g, ok := commandGroups[c.Name()]; ok {
		return g
	}
	return groupOther
}

// FormatGlobalUsage собирает общую справку с командами по разделам.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("ListKeeper CLI: dated lists with optional images\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("  lkcli [--base-url <host:port>] [--client-dir <dir>] [--debug] <command> [args]\n")
	b.WriteString("  lkcli help <command>\n")

	byGroup := make(map[string][]Command)
	for _, c := range List() {
		g := groupOf(c)
		byGroup[g] = append(byGroup[g], c)
	}
	for _, g := range groupOrder {
		cmds := byGroup[g]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s commands:\n", g)
		for _, c := range cmds {
			fmt.Fprintf(&b, "  %-44s %s\n", c.Usage(), c.Description())
		}
	}
	return b.String()
}
