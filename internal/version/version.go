// Package version хранит сведения о сборке, заполняемые через -ldflags:
//
//	go build -ldflags "-X github.com/vladislavdragonenkov/orders-admin/internal/version.version=v1.2.0"
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info returns version information populated via -ldflags.
func Info() (v, c, d string) { return version, commit, date }

// GetVersion возвращает версию сборки; попадает в ответ /healthz.
func GetVersion() string { return version }

func GetCommit() string { return commit }

func GetDate() string { return date }

// String используется в стартовом логе и в `orders-admin -version`.
func String() string {
	return fmt.Sprintf("orders-admin version=%s commit=%s date=%s", version, commit, date)
}
