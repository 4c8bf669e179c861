package plugin

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout

	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
)

// SetOutput 设置进度与诊断信息的输出位置，返回原来的输出
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func logf(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "[strunemix] "+format+"\n", args...)
}

func warnf(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	warnColor.Fprintf(out, "[strunemix] 警告: "+format+"\n", args...)
}

func errorf(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	errorColor.Fprintf(out, "[strunemix] 错误: "+format+"\n", args...)
}

func rawf(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, args...)
}
