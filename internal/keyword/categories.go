package keyword

import "github.com/diasm3/customer-cs/internal/types"

// businessCategories pairs each category with its bilingual seed terms.
// Declaration order is the matching order: the first category whose seed
// equals the keyword, or is a substring of it, claims the keyword.
var businessCategories = []struct {
	Category types.Category
	Seeds    []string
}{
	{types.CategoryProductService, []string{
		"제품", "서비스", "상품", "솔루션", "기능", "특징", "가격", "비용", "요금",
		"product", "service", "price",
	}},
	{types.CategoryCustomerSupport, []string{
		"문의", "질문", "도움", "지원", "상담", "문제", "해결", "답변", "설명",
		"help", "support", "question",
	}},
	{types.CategoryOrderPayment, []string{
		"주문", "구매", "결제", "카드", "계좌", "배송", "주소", "수량", "할인",
		"order", "payment", "buy",
	}},
	{types.CategoryTechnical, []string{
		"사용법", "설정", "설치", "연결", "로그인", "계정", "비밀번호", "업데이트",
		"install", "setup", "login",
	}},
	{types.CategoryPolicyTerms, []string{
		"정책", "약관", "규정", "조건", "환불", "취소", "교환", "보증", "개인정보",
		"policy", "terms", "refund",
	}},
}

// intentPatterns lists the rule sets in priority order; the first set with
// a substring match on the transformed query wins.
var intentPatterns = []struct {
	Intent   types.Intent
	Patterns []string
}{
	{types.IntentInformationRequest, []string{
		"무엇", "어떤", "어떻게", "언제", "어디서", "왜", "설명", "알려",
		"what", "how", "when", "where", "why",
	}},
	{types.IntentProblemSolving, []string{
		"문제", "오류", "안됨", "작동", "해결", "고장", "버그",
		"problem", "error", "fix", "broken",
	}},
	{types.IntentPurchase, []string{
		"구매", "사고싶", "주문", "결제", "가격", "할인", "비용",
		"buy", "purchase", "order", "price",
	}},
	{types.IntentComplaint, []string{
		"불만", "개선", "문제", "이상", "잘못", "실망",
		"complaint", "improve", "wrong", "disappointed",
	}},
}
