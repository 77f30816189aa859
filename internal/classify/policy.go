package classify

import (
	"golang.org/x/text/cases"
	"math"
	"strconv"
	"strings"
)

// 将数据源原始的标签转换为0/1类别
type Policy interface {
	Type() PolicyType
	Label(raw string) Decision
}

type Decision struct {
	Label     int
	Defaulted bool // 原始值无法解析，使用了默认类别
}

type PolicyType string

const (
	CategoricalPolicy = PolicyType("categorical")
	NumericPolicy     = PolicyType("numeric")
)

const (
	DefaultPositiveCategory = "phishing email"
	DefaultPositiveStatus   = 1
)

func GetPolicy(policyType PolicyType) Policy {
	switch policyType {
	case CategoricalPolicy:
		return &Categorical{Positive: DefaultPositiveCategory}
	case NumericPolicy:
		return &Numeric{Positive: DefaultPositiveStatus}
	default:
		return nil
	}
}

// 用于邮件一类以字符串表示类别的数据源。比较前去除空白并忽略大小写
type Categorical struct {
	Positive string
}

func (c *Categorical) Type() PolicyType {
	return CategoricalPolicy
}

func (c *Categorical) Label(raw string) Decision {
	folder := cases.Fold()
	if folder.String(strings.TrimSpace(raw)) == folder.String(strings.TrimSpace(c.Positive)) {
		return Decision{Label: 1}
	}
	return Decision{Label: 0}
}

// 用于URL一类以状态码表示类别的数据源。无法解析的值视为正常(0)，而不是删除该行
type Numeric struct {
	Positive float64
}

func (n *Numeric) Type() PolicyType {
	return NumericPolicy
}

func (n *Numeric) Label(raw string) Decision {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return Decision{Label: 0, Defaulted: true}
	}
	// 与pandas的astype(int)一致，先截断再比较
	if math.Trunc(f) == n.Positive {
		return Decision{Label: 1}
	}
	return Decision{Label: 0}
}
