package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/simcar/internal/client/client"
)

// command is one REPL verb. Commands with auth set are refused while
// anonymous instead of letting the server answer 401.
type command struct {
	name  string
	usage string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

// replState is what the loop needs from App; tests provide a stub.
type replState interface {
	isLoggedIn() bool
	getStatus() string
}

// runREPL reads one command per line from r and dispatches it to cmds.
// The loop ends on EOF, on "exit" / "quit" or when ctx is done. Command
// errors are reported and the loop goes on.
func runREPL(ctx context.Context, st replState, cmds []command, r *bufio.Reader, w io.Writer) {
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		byName[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "simcar%s> ", prefixSpace(st.getStatus()))

		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(w, cmds, st.isLoggedIn())
			continue
		}

		c, ok := byName[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if c.auth && !st.isLoggedIn() {
			fmt.Fprintln(w, "로그인이 필요합니다. login 명령으로 로그인해 주세요.")
			continue
		}
		if err := c.run(ctx, args); err != nil {
			fmt.Fprintln(w, "오류:", client.Describe(err))
		}
	}
}

func printHelp(w io.Writer, cmds []command, loggedIn bool) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range cmds {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "  %-12s %s\n", "help", "명령어 목록")
	fmt.Fprintf(w, "  %-12s %s\n", "exit", "종료")
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

func (a *App) commands() []command {
	return []command{
		{name: "signup", usage: "회원가입", run: a.Signup},
		{name: "login", usage: "로그인", run: a.Login},
		{name: "logout", usage: "로그아웃", auth: true, run: a.Logout},
		{name: "whoami", usage: "세션 정보", run: a.Whoami},
		{name: "profile", usage: "내 정보 조회", auth: true, run: a.ShowProfile},
		{name: "editprofile", usage: "내 정보 수정", auth: true, run: a.EditProfile},
		{name: "withdraw", usage: "회원 탈퇴", auth: true, run: a.Withdraw},
		{name: "search", usage: "[검색어] [brand=a,b type= fuel= color= transmission= minPrice= maxPrice= minYear= maxYear=]", run: a.Search},
		{name: "show", usage: "<차량 ID> 상세 보기", run: a.Show},
		{name: "diagnosis", usage: "<차량 ID> 신뢰도 진단", run: a.Diagnose},
		{name: "sell", usage: "차량 등록", auth: true, run: a.Sell},
		{name: "edit", usage: "<차량 ID> 차량 정보 수정", auth: true, run: a.Edit},
		{name: "remove", usage: "<차량 ID> 차량 삭제", auth: true, run: a.Remove},
		{name: "thumbnail", usage: "<차량 ID> <이미지 ID> 대표 이미지 지정", auth: true, run: a.Thumbnail},
		{name: "fav", usage: "<차량 ID> 찜하기", auth: true, run: a.AddFavorite},
		{name: "unfav", usage: "<차량 ID> 찜 해제", auth: true, run: a.RemoveFavorite},
		{name: "favorites", usage: "찜한 차량 목록", auth: true, run: a.Favorites},
		{name: "sales", usage: "내 판매 차량", auth: true, run: a.Sales},
		{name: "quiz", usage: "[easy|medium|hard] [문항 수] 중고차 퀴즈", run: a.Quiz},
	}
}
