package demo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// Pauser останавливает демонстрацию между шагами.
type Pauser interface {
	// Wait возвращает ctx.Err(), если ctx отменен раньше окончания паузы.
	Wait(ctx context.Context) error
}

// NoPause не делает пауз.
type NoPause struct{}

func (NoPause) Wait(context.Context) error {
	return nil
}

// LinePauser печатает приглашение и ждет перевода строки.
// Строки читаются в отдельной горутине, чтобы ожидание можно было прервать.
type LinePauser struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan error
}

func NewLinePauser(in io.Reader, out io.Writer) *LinePauser {
	return &LinePauser{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan error),
	}
}

func (p *LinePauser) Wait(ctx context.Context) error {
	if _, err := fmt.Fprintln(p.out, "Press Enter to continue."); err != nil {
		return err
	}
	p.once.Do(func() { go p.read() })

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-p.lines:
		if !ok || err == io.EOF {
			return nil
		}
		return err
	}
}

// read передает результат каждого чтения строки. После первой ошибки канал закрывается.
func (p *LinePauser) read() {
	defer close(p.lines)
	for {
		_, err := p.in.ReadString('\n')
		p.lines <- err
		if err != nil {
			return
		}
	}
}
