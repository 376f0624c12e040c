package expression

import "fmt"

type Precedence int

const (
	Assignment Precedence = iota
	Additive
	Multiplicative
	Unary
	Primary
)

var precedenceNames = map[Precedence]string{
	Assignment:     "Assignment",
	Additive:       "Additive",
	Multiplicative: "Multiplicative",
	Unary:          "Unary",
	Primary:        "Primary",
}

func (p Precedence) String() string {
	if s, ok := precedenceNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Precedence(%d)", int(p))
}

type Associativity int

const (
	LeftToRight Associativity = iota
	RightToLeft
)

func (a Associativity) String() string {
	switch a {
	case LeftToRight:
		return "LeftToRight"
	case RightToLeft:
		return "RightToLeft"
	default:
		return fmt.Sprintf("Associativity(%d)", int(a))
	}
}

type operatorInfo struct {
	precedence    Precedence
	associativity Associativity
}

// Function is Primary but the converter never compares it by precedence.
var operatorInfoMap = map[OperatorType]operatorInfo{
	UnaryPlus:      {precedence: Unary, associativity: RightToLeft},
	UnaryMinus:     {precedence: Unary, associativity: RightToLeft},
	Multiplication: {precedence: Multiplicative, associativity: LeftToRight},
	Division:       {precedence: Multiplicative, associativity: LeftToRight},
	Addition:       {precedence: Additive, associativity: LeftToRight},
	Subtraction:    {precedence: Additive, associativity: LeftToRight},
	Function:       {precedence: Primary, associativity: LeftToRight},
}

func (t OperatorType) isValid() bool {
	_, ok := operatorInfoMap[t]
	return ok
}

func (t OperatorType) info() operatorInfo {
	info, ok := operatorInfoMap[t]
	if !ok {
		panic(fmt.Sprintf("should not reach here: unknown operator type %d", int(t)))
	}
	return info
}

func (t OperatorType) Precedence() Precedence {
	return t.info().precedence
}

func (t OperatorType) Associativity() Associativity {
	return t.info().associativity
}

// popsBefore reports whether the operator o2 on top of the stack must be
// emitted before o1 is pushed.
func popsBefore(o1, o2 OperatorType) bool {
	switch o1.Associativity() {
	case LeftToRight:
		return o1.Precedence() <= o2.Precedence()
	case RightToLeft:
		return o1.Precedence() < o2.Precedence()
	default:
		panic(fmt.Sprintf("should not reach here: unknown associativity %d", int(o1.Associativity())))
	}
}
