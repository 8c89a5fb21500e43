package forbiddencalls

import (
	"log"
	"os"
)

func Allocate() {
	panic("allocator broke") // want "panic is forbidden"
}

func LoadConfig() {
	log.Fatal("no config") // want "log.Fatal is forbidden outside main function"
}

func LoadConfigf(path string) {
	log.Fatalf("no config at %s", path) // want "log.Fatalf is forbidden outside main function"
}

func Shutdown() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

// main in a library package is not a program entry point.
func main() {
	os.Exit(0) // want "os.Exit is forbidden outside main function"
}

func init() {
	panic("panic forbidden even in init") // want "panic is forbidden"
}

type Server struct{}

func (s *Server) Run() {
	log.Fatalln("server failed") // want "log.Fatalln is forbidden outside main function"
}

func Allowed() {
	log.Println("fine")
	var exit func(int)
	exit = func(int) {}
	exit(1)
}
