package domain

// Option is a value/label pair backing a picker field.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// CodeNameText renders "code(name)", or just the code when name is empty.
func CodeNameText(code, name string) string {
	if name == "" {
		return code
	}
	return code + "(" + name + ")"
}

// QiandiaoOrder is a parts order waiting for tooling-change feedback.
type QiandiaoOrder struct {
	ID             string `json:"id"`
	MoldCode       string `json:"moldCode"`
	ImportPartCode string `json:"importPartCode"`
	MouldMakeOrder string `json:"mouldMakeOrder"`
	CraftCode      string `json:"craftCode"`
	CraftName      string `json:"craftName"`
	PlineCode      string `json:"plineCode"`
	ShiftChange    string `json:"shiftChange"`
}

// OrderQuery filters the wait-assign order list.
type OrderQuery struct {
	MoldCode       string
	ImportPartCode string
	MouldMakeOrder string
	ShiftChange    string
	PageNum        int
	PageSize       int
}

// OrderPage is one page of the wait-assign order list.
type OrderPage struct {
	Rows  []QiandiaoOrder
	Total int
}

// QianTiaoUser is the department/line/operator header shown on the
// qiandiao screens.
type QianTiaoUser struct {
	DeptID           string `json:"deptId"`
	DeptName         string `json:"deptName"`
	PlineCode        string `json:"plineCode"`
	PlineName        string `json:"plineName"`
	OperatorUserName string `json:"operatorUserName"`
	OperatorNickName string `json:"operatorNickName"`
}

// Label renders "dept-line-operator".
func (u QianTiaoUser) Label() string {
	return CoalesceStr(u.DeptName, "-") + "-" + CoalesceStr(u.PlineName, "-") + "-" + CoalesceStr(u.OperatorNickName, u.OperatorUserName)
}
