package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"message-ledger/client"
	"message-ledger/domain"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func renderMessages(w io.Writer, messages []domain.Message, colours bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Sender", "Receiver", "Sent at", "Read", "Content"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, message := range messages {
		table.Append([]string{
			strconv.FormatUint(message.ID, 10),
			message.Sender.String(),
			message.Receiver.String(),
			sentAt(message),
			readMark(message.IsRead, colours),
			message.Content,
		})
	}
	table.Render()
}

func renderSession(w io.Writer, session client.Session, colours bool) {
	fmt.Fprintf(w, "%s %s\n", paint("Identity:", colours), session.Identity)
	fmt.Fprintf(w, "%s %s\n", paint("Token:", colours), session.Token)
}

func sentAt(message domain.Message) string {
	if message.IsPlaceholder() {
		return "-"
	}
	return time.Unix(int64(message.Timestamp), 0).UTC().Format(time.RFC3339)
}

func readMark(read bool, colours bool) string {
	if !read {
		return "no"
	}
	if colours {
		return color.Green.Sprint("yes")
	}
	return "yes"
}

func paint(label string, colours bool) string {
	if !colours {
		return label
	}
	return color.New(color.FgCyan, color.OpBold).Render(label)
}
