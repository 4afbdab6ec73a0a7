package notify

import (
	"fmt"
	"strings"
)

const (
	appName = "dir-notify"

	// how long the transient Windows tray icon stays before the helper
	// script disposes it
	balloonSeconds = 5
)

// Channels returns the delivery chain for goos, ordered from most to least
// native. The order is fixed at construction; callers never re-detect the
// platform per send.
func Channels(goos string) []Channel {
	switch goos {
	case "darwin":
		return []Channel{
			&scriptChannel{name: "osascript-notification", argv: darwinNotificationArgv},
			&scriptChannel{name: "osascript-dialog", spawn: true, argv: darwinDialogArgv},
		}
	case "windows":
		return []Channel{
			&scriptChannel{name: "powershell-toast", argv: windowsToastArgv},
			&scriptChannel{name: "powershell-balloon", spawn: true, argv: windowsBalloonArgv},
			&scriptChannel{name: "powershell-dialog", spawn: true, argv: windowsDialogArgv},
		}
	default:
		return []Channel{
			&scriptChannel{name: "notify-send", argv: linuxNotificationArgv},
			&scriptChannel{name: "zenity-notification", argv: linuxTrayArgv},
			&scriptChannel{name: "zenity-dialog", spawn: true, argv: linuxDialogArgv},
		}
	}
}

func darwinNotificationArgv(n Notification) []string {
	script := fmt.Sprintf("display notification %s with title %s",
		appleString(n.Body), appleString(n.Title))
	return []string{"osascript", "-e", script}
}

func darwinDialogArgv(n Notification) []string {
	icon := "note"
	if n.Severity != SeverityInfo {
		icon = "caution"
	}
	script := fmt.Sprintf(
		`display dialog %s with title %s buttons {"OK"} default button 1 with icon %s`,
		appleString(n.Body), appleString(n.Title), icon)
	return []string{"osascript", "-e", script}
}

// appleString quotes s as an AppleScript string literal so title/body
// text cannot break out of the script.
func appleString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func linuxNotificationArgv(n Notification) []string {
	urgency := "normal"
	if n.Severity != SeverityInfo {
		urgency = "critical"
	}
	return []string{
		"notify-send",
		"--app-name=" + appName,
		"--urgency=" + urgency,
		"--",
		n.Title,
		n.Body,
	}
}

func linuxTrayArgv(n Notification) []string {
	return []string{"zenity", "--notification", "--text=" + n.Title + "\n" + n.Body}
}

func linuxDialogArgv(n Notification) []string {
	kind := "--info"
	if n.Severity != SeverityInfo {
		kind = "--warning"
	}
	return []string{"zenity", kind, "--title=" + n.Title, "--text=" + n.Body}
}

func windowsToastArgv(n Notification) []string {
	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
$xml = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$texts = $xml.GetElementsByTagName('text')
$texts.Item(0).AppendChild($xml.CreateTextNode(%s)) | Out-Null
$texts.Item(1).AppendChild($xml.CreateTextNode(%s)) | Out-Null
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show([Windows.UI.Notifications.ToastNotification]::new($xml))
`, psString(n.Title), psString(n.Body), psString(appName))
	return powershellArgv(script)
}

// windowsBalloonArgv shows a transient tray icon; the script itself
// disposes the icon after balloonSeconds so Send never waits for it.
func windowsBalloonArgv(n Notification) []string {
	tip := "Info"
	if n.Severity != SeverityInfo {
		tip = "Warning"
	}
	script := fmt.Sprintf(`
Add-Type -AssemblyName System.Windows.Forms
Add-Type -AssemblyName System.Drawing
$icon = New-Object System.Windows.Forms.NotifyIcon
$icon.Icon = [System.Drawing.SystemIcons]::Information
$icon.Visible = $true
$icon.ShowBalloonTip(%d, %s, %s, [System.Windows.Forms.ToolTipIcon]::%s)
Start-Sleep -Seconds %d
$icon.Dispose()
`, balloonSeconds*1000, psString(n.Title), psString(n.Body), tip, balloonSeconds+1)
	return powershellArgv(script)
}

func windowsDialogArgv(n Notification) []string {
	icon := "Information"
	if n.Severity != SeverityInfo {
		icon = "Warning"
	}
	script := fmt.Sprintf(`
Add-Type -AssemblyName System.Windows.Forms
[System.Windows.Forms.MessageBox]::Show(%s, %s, 'OK', [System.Windows.Forms.MessageBoxIcon]::%s) | Out-Null
`, psString(n.Body), psString(n.Title), icon)
	return powershellArgv(script)
}

func powershellArgv(script string) []string {
	return []string{"powershell", "-NoProfile", "-NonInteractive", "-Command", script}
}

// psString quotes s as a PowerShell single-quoted literal, the only
// quoting form that disables all interpolation.
func psString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
