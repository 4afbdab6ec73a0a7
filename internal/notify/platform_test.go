package notify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/samber/lo"
)

func TestChannels_Order(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{
			goos: "darwin",
			want: []string{"osascript-notification", "osascript-dialog"},
		},
		{
			goos: "windows",
			want: []string{"powershell-toast", "powershell-balloon", "powershell-dialog"},
		},
		{
			goos: "linux",
			want: []string{"notify-send", "zenity-notification", "zenity-dialog"},
		},
		{
			goos: "freebsd",
			want: []string{"notify-send", "zenity-notification", "zenity-dialog"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got := lo.Map(Channels(tt.goos), func(c Channel, _ int) string { return c.Name() })
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Channels(%q) = %v, want %v", tt.goos, got, tt.want)
			}
		})
	}
}

func Test_appleString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "a.txt", want: `"a.txt"`},
		{name: "Quotes", in: `say "hi"`, want: `"say \"hi\""`},
		{name: "Backslash", in: `a\b`, want: `"a\\b"`},
		{name: "Injection attempt", in: `" & do shell script "rm -rf ~`, want: `"\" & do shell script \"rm -rf ~"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appleString(tt.in); got != tt.want {
				t.Errorf("appleString() = %s, want %s", got, tt.want)
			}
		})
	}
}

func Test_psString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "b.txt", want: "'b.txt'"},
		{name: "Single quote", in: "it's", want: "'it''s'"},
		{name: "Injection attempt", in: "'; Remove-Item -Recurse ~; '", want: "'''; Remove-Item -Recurse ~; '''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := psString(tt.in); got != tt.want {
				t.Errorf("psString() = %s, want %s", got, tt.want)
			}
		})
	}
}

func Test_darwinNotificationArgv(t *testing.T) {
	argv := darwinNotificationArgv(Notification{Title: `t"x`, Body: "b", Severity: SeverityInfo})

	if argv[0] != "osascript" || argv[1] != "-e" {
		t.Fatalf("argv = %v, want osascript -e <script>", argv)
	}
	if want := `display notification "b" with title "t\"x"`; argv[2] != want {
		t.Errorf("script = %s, want %s", argv[2], want)
	}
}

func Test_linuxNotificationArgv(t *testing.T) {
	tests := []struct {
		name        string
		severity    Severity
		wantUrgency string
	}{
		{name: "Info is normal", severity: SeverityInfo, wantUrgency: "--urgency=normal"},
		{name: "Warning is critical", severity: SeverityWarning, wantUrgency: "--urgency=critical"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv := linuxNotificationArgv(Notification{Title: "-t", Body: "b", Severity: tt.severity})

			if argv[0] != "notify-send" {
				t.Fatalf("argv = %v, want notify-send invocation", argv)
			}
			if !lo.Contains(argv, tt.wantUrgency) {
				t.Errorf("argv = %v, want %s", argv, tt.wantUrgency)
			}
			// a leading-dash title must sit after the options terminator
			if !lo.Contains(argv, "--") {
				t.Errorf("argv = %v, want options terminator before user text", argv)
			}
		})
	}
}

func Test_windowsArgvEscaped(t *testing.T) {
	n := Notification{Title: "it's", Body: "b'c", Severity: SeverityWarning}

	for name, argv := range map[string][]string{
		"toast":   windowsToastArgv(n),
		"balloon": windowsBalloonArgv(n),
		"dialog":  windowsDialogArgv(n),
	} {
		script := argv[len(argv)-1]
		if strings.Contains(script, "it's") || strings.Contains(script, "b'c") {
			t.Errorf("%s script embeds unescaped text: %s", name, script)
		}
		if !strings.Contains(script, "it''s") {
			t.Errorf("%s script missing escaped title: %s", name, script)
		}
	}
}
