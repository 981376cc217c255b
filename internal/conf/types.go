package conf

type Config struct {
	Server    Server
	Web       Web
	Inference Inference
	Log       Log
}

type Server struct {
	Listen string
}

type Web struct {
	RootPath string
}

type Inference struct {
	Endpoint string
	Model    string
}

type Log struct {
	Level string
}
