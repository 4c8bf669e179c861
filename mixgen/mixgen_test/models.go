package mixgen_test

//go:generate bash -c "cd ../../ && go build -o strunemix && ./strunemix gen ./mixgen/mixgen_test && go test ./mixgen/mixgen_test/..."

// Person 全部 derive 与 parse=auto
// @Strunemix(label=snake, name_derive="String|Text|JSON|Compare", data_derive="String|JSON", parse=auto)
type Person struct {
	Name string
	Age  int
}

// Account 跳过的字段取自构造函数
// @Strunemix(default=NewAccount)
type Account struct {
	ID       int64
	Email    string
	Password string `strunemix:"skip"`
}

func NewAccount() Account {
	return Account{Password: "changeme"}
}

// Session 跳过的字段取自 Default
// @Strunemix(default=zero)
type Session struct {
	Token  string
	TTL    int
	Region string `strunemix:"skip"`
}

func (Session) Default() Session {
	return Session{TTL: 60, Region: "us"}
}

// Draft 有跳过字段但没有默认值，不能重建
// @Strunemix
type Draft struct {
	Title string
	Notes []string `strunemix:"skip"`
}

// Pair 泛型结构体
// @Strunemix(data_derive=JSON)
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}
